package gate

import (
	"fmt"
	"regexp"
	"strings"

	pstrings "foiagate/pkg/platform/strings"
)

// MaxEvidence caps the number of bullets shown to the reviewer.
const MaxEvidence = 5

var (
	timelinePattern  = regexp.MustCompile(`(?i)\b\d{1,3}\s+(?:business\s+days?|working\s+days?|weeks?)\b`)
	citationPattern  = regexp.MustCompile(`(?i)\(b\)\s?\(\d+\)(?:\s?\([a-z]\))?`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

// keywordBullet emits Bullet when the lowercased text contains any keyword.
type keywordBullet struct {
	Bullet   string
	Keywords []string
}

var paymentBullets = []keywordBullet{
	{Bullet: "Payment by invoice", Keywords: []string{"invoice"}},
	{Bullet: "Payment by mail (check or money order)", Keywords: []string{"money order", "mail a check", "mail payment", "check payable", "by mail"}},
	{Bullet: "Online payment available", Keywords: []string{"pay online", "online payment", "payment portal", "pay through the portal", "pay via the portal"}},
}

var availabilityBullets = []keywordBullet{
	{Bullet: "Records not held by agency", Keywords: []string{"not held", "no responsive records", "no records responsive", "does not maintain", "do not maintain"}},
	{Bullet: "No interrogation video", Keywords: []string{"no interrogation video", "interrogation was not recorded", "interview was not recorded", "no recorded interview"}},
	{Bullet: "No footage available", Keywords: []string{"no footage", "no video footage", "no dash cam", "no dashcam"}},
}

const bwcWithheldBullet = "BWC withheld (not subject to FOIA)"

var denialBullets = []keywordBullet{
	{Bullet: "Investigative exemption referenced", Keywords: []string{"investigat"}},
	{Bullet: "Privacy exemption referenced", Keywords: []string{"privacy"}},
	{Bullet: "Law enforcement exemption referenced", Keywords: []string{"law enforcement", "law-enforcement"}},
}

var scopeBullets = []keywordBullet{
	{Bullet: "Agency says request is too broad", Keywords: []string{"too broad", "overly broad"}},
	{Bullet: "Agency requests clarification", Keywords: []string{"clarif"}},
	{Bullet: "Agency asks for a date range", Keywords: []string{"date range"}},
}

// unavailableMarkers identify availability bullets in an evidence list.
var unavailableMarkers = []string{"withheld", "not held", "no interrogation", "no footage", "unavailable"}

// ExtractEvidence derives the "agency says" bullets for a resolved reason.
// Structured fields come first, then amount extraction, then timeline, payment
// and availability heuristics, then reason-specific heuristics. The result is
// deduplicated and capped at MaxEvidence without re-sorting.
func ExtractEvidence(c CaseSnapshot, last *InboundMessage, reason GateReason) []string {
	body := ""
	if last != nil {
		body = last.Body
	}
	text := strings.ToLower(body)
	feeContext := allowsFeeContext(reason)

	bullets := make([]string, 0, 2*MaxEvidence)
	if feeContext {
		if v, ok := positive(c.CostAmount); ok {
			bullets = append(bullets, "Fee estimate: "+FormatUSD(v))
		}
		if c.FeeQuote != nil {
			if v, ok := positive(c.FeeQuote.DepositAmount); ok {
				bullets = append(bullets, "Deposit required: "+FormatUSD(v))
			}
		}
		if _, hasCost := positive(c.CostAmount); !hasCost {
			if amounts := dollarAmounts(body); len(amounts) >= 2 {
				bullets = append(bullets, fmt.Sprintf("Agency quotes %s deposit, %s estimate",
					FormatUSD(amounts[0]), FormatUSD(amounts[len(amounts)-1])))
			}
		}
	}

	if m := timelinePattern.FindString(body); m != "" {
		bullets = append(bullets, "Timeline: "+whitespaceRegexp.ReplaceAllString(strings.ToLower(m), " "))
	}

	if feeContext {
		bullets = appendMatches(bullets, text, paymentBullets)
	}

	if mentionsWithheldBWC(text) {
		bullets = append(bullets, bwcWithheldBullet)
	}
	bullets = appendMatches(bullets, text, availabilityBullets)
	if n := unavailableScopeItems(c.ScopeItems); n > 0 {
		bullets = append(bullets, fmt.Sprintf("%d requested item(s) unavailable", n))
	}

	// Fee letters mention exemptions in passing; only a denial may cite one.
	if reason == ReasonDenial && strings.Contains(text, "exempt") && !strings.Contains(text, "non-exempt") {
		if cite := citationPattern.FindString(body); cite != "" {
			bullets = append(bullets, "Exemption cited: "+strings.ToLower(strings.ReplaceAll(cite, " ", "")))
		} else {
			bullets = append(bullets, "Exemption cited")
		}
	}

	switch reason {
	case ReasonDenial:
		bullets = appendMatches(bullets, text, denialBullets)
	case ReasonScope:
		bullets = appendMatches(bullets, text, scopeBullets)
	}

	return pstrings.DedupeAndTrimN(bullets, MaxEvidence)
}

// HasUnavailableSignal reports whether the evidence says some records cannot
// be produced.
func HasUnavailableSignal(evidence []string) bool {
	for _, b := range evidence {
		if containsAny(strings.ToLower(b), unavailableMarkers...) {
			return true
		}
	}
	return false
}

// allowsFeeContext gates fee and payment bullets so fee boilerplate does not
// leak into denial, identity or sensitive-content gates.
func allowsFeeContext(reason GateReason) bool {
	switch reason {
	case ReasonDenial, ReasonIDRequired, ReasonSensitive:
		return false
	}
	return true
}

func mentionsWithheldBWC(text string) bool {
	if strings.Contains(text, "not subject to foia") {
		return true
	}
	return containsAny(text, "bwc", "body camera", "body-worn", "body worn") &&
		containsAny(text, "withheld", "withhold", "not releas")
}

func appendMatches(bullets []string, text string, rules []keywordBullet) []string {
	for _, r := range rules {
		if containsAny(text, r.Keywords...) {
			bullets = append(bullets, r.Bullet)
		}
	}
	return bullets
}

func unavailableScopeItems(items []ScopeItem) int {
	n := 0
	for _, item := range items {
		if item.Status.Unavailable() {
			n++
		}
	}
	return n
}

func hasBullet(evidence []string, prefix string) bool {
	for _, b := range evidence {
		if strings.HasPrefix(b, prefix) {
			return true
		}
	}
	return false
}
