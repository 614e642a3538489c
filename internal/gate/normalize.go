package gate

import "strings"

// Normalize resolves a raw pause signal, the case fields and the last inbound
// message to exactly one GateReason. It never fails; unresolvable input yields
// ReasonUnknown.
func Normalize(raw *string, c CaseSnapshot, last *InboundMessage) GateReason {
	return Classify(raw, c, last).Reason
}

// Classify is Normalize with provenance. Rules run in strict priority order and
// the first match wins, so an explicit signal is never overridden by an
// inferred one.
func Classify(raw *string, c CaseSnapshot, last *InboundMessage) Classification {
	rawText := ""
	if raw != nil {
		rawText = strings.TrimSpace(*raw)
	}

	if rawText != "" {
		if reason, ok := match(rawText, vocab.RawReason); ok {
			return classified(reason, SourceRawReason)
		}
		if containsAny(strings.ToLower(rawText), vocab.UnspecifiedMarkers...) {
			if reason, ok := match(c.Substatus, vocab.Substatus); ok {
				return classified(reason, SourceSubstatus)
			}
		}
	}

	if hasStructuredFee(c) {
		return classified(ReasonFeeQuote, SourceStructured)
	}

	if last != nil && last.Body != "" {
		if reason, ok := match(last.Body, vocab.Inbound); ok {
			return classified(reason, SourceInbound)
		}
	}

	return Classification{Reason: ReasonUnknown, Quality: QualityFallback, Source: SourceNone}
}

func classified(reason GateReason, source Source) Classification {
	return Classification{Reason: reason, Quality: QualityClassified, Source: source}
}

func hasStructuredFee(c CaseSnapshot) bool {
	if c.CostAmount != nil && *c.CostAmount != 0 {
		return true
	}
	if c.FeeQuote != nil && c.FeeQuote.DepositAmount != nil && *c.FeeQuote.DepositAmount != 0 {
		return true
	}
	status := strings.ToLower(strings.TrimSpace(c.CostStatus))
	return status != "" && status != "none"
}
