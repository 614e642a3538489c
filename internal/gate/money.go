package gate

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var dollarPattern = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})+|\d+)(\.\d{1,2})?`)

// FormatUSD renders an amount the way bullets and questions show it:
// "$150", "$1,500.50".
func FormatUSD(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return "$" + humanize.Comma(int64(v))
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// dollarAmounts returns every dollar amount in text, sorted ascending.
func dollarAmounts(text string) []float64 {
	matches := dollarPattern.FindAllStringSubmatch(text, -1)
	amounts := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "")+m[2], 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, v)
	}
	sort.Float64s(amounts)
	return amounts
}

// positive dereferences an optional amount, reporting whether it is set and > 0.
func positive(v *float64) (float64, bool) {
	if v == nil || *v <= 0 {
		return 0, false
	}
	return *v, true
}

// quotedFee is the fee the reviewer is being asked about: the structured cost
// amount, else the fee quote amount.
func quotedFee(c CaseSnapshot) (float64, bool) {
	if v, ok := positive(c.CostAmount); ok {
		return v, true
	}
	if c.FeeQuote != nil {
		return positive(c.FeeQuote.Amount)
	}
	return 0, false
}
