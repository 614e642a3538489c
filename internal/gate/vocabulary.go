package gate

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

type keywordRule struct {
	Reason   GateReason `yaml:"reason"`
	Keywords []string   `yaml:"keywords"`
}

type vocabulary struct {
	RawReason          []keywordRule `yaml:"raw_reason"`
	UnspecifiedMarkers []string      `yaml:"unspecified_markers"`
	Substatus          []keywordRule `yaml:"substatus"`
	Inbound            []keywordRule `yaml:"inbound"`
}

var vocab = mustLoadVocabulary(vocabularyYAML)

func mustLoadVocabulary(data []byte) vocabulary {
	v, err := loadVocabulary(data)
	if err != nil {
		panic(fmt.Sprintf("load vocabulary.yaml: %v", err))
	}
	return v
}

func loadVocabulary(data []byte) (vocabulary, error) {
	var v vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return vocabulary{}, err
	}
	for name, rules := range map[string][]keywordRule{
		"raw_reason": v.RawReason,
		"substatus":  v.Substatus,
		"inbound":    v.Inbound,
	} {
		if len(rules) == 0 {
			return vocabulary{}, fmt.Errorf("%s: no rules", name)
		}
		for i := range rules {
			if !rules[i].Reason.IsValid() || rules[i].Reason == ReasonUnknown {
				return vocabulary{}, fmt.Errorf("%s[%d]: invalid reason %q", name, i, rules[i].Reason)
			}
			if len(rules[i].Keywords) == 0 {
				return vocabulary{}, fmt.Errorf("%s[%d]: no keywords", name, i)
			}
			rules[i].Keywords = lowerAll(rules[i].Keywords)
		}
	}
	v.UnspecifiedMarkers = lowerAll(v.UnspecifiedMarkers)
	return v, nil
}

// match returns the reason of the first rule with a keyword contained in text.
func match(text string, rules []keywordRule) (GateReason, bool) {
	lowered := strings.ToLower(text)
	for _, rule := range rules {
		if containsAny(lowered, rule.Keywords...) {
			return rule.Reason, true
		}
	}
	return ReasonUnknown, false
}

// containsAny expects s already lowercased.
func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
