package gate

// FeeNegotiationThreshold is the quoted fee above which negotiating is
// recommended.
const FeeNegotiationThreshold = 100.0

// Recommendation promotes one of a gate's two configured actions.
type Recommendation struct {
	ActionID  string `json:"action_id"`
	Rationale string `json:"rationale"`
}

// Score picks the recommended action for reason, or nil when no policy
// applies. It never removes an option; OrderActions only reorders.
func Score(reason GateReason, c CaseSnapshot, evidence []string) *Recommendation {
	switch reason {
	case ReasonFeeQuote:
		return recommendFeeQuote(c, evidence)
	case ReasonDenial:
		return recommendDenial(evidence)
	case ReasonScope:
		return recommendScope(evidence)
	default:
		return nil
	}
}

func recommendFeeQuote(c CaseSnapshot, evidence []string) *Recommendation {
	unavailable := HasUnavailableSignal(evidence)
	fee, _ := quotedFee(c)
	expensive := fee > FeeNegotiationThreshold

	switch {
	case unavailable && expensive:
		return &Recommendation{
			ActionID: "negotiate_fee",
			Rationale: "Some requested records are unavailable and the fee is over " +
				FormatUSD(FeeNegotiationThreshold) + ". Negotiate the fee down to cover only what will be released.",
		}
	case unavailable:
		return &Recommendation{
			ActionID:  "negotiate_fee",
			Rationale: "Some requested records are unavailable. Ask the agency to adjust the fee to what it will actually release.",
		}
	case expensive:
		return &Recommendation{
			ActionID:  "negotiate_fee",
			Rationale: "The fee is over " + FormatUSD(FeeNegotiationThreshold) + ". Ask for a reduction or a public-interest waiver.",
		}
	default:
		return nil
	}
}

func recommendDenial(evidence []string) *Recommendation {
	switch {
	case hasBullet(evidence, "Records not held"):
		return &Recommendation{
			ActionID:  "rebut",
			Rationale: "The agency says it holds no responsive records. Ask it to describe its search before appealing.",
		}
	case hasBullet(evidence, "Exemption cited"):
		return &Recommendation{
			ActionID:  "appeal",
			Rationale: "The agency cited an exemption. An appeal can test whether it covers every withheld record.",
		}
	default:
		return nil
	}
}

func recommendScope(evidence []string) *Recommendation {
	switch {
	case hasBullet(evidence, "Agency asks for a date range"):
		return &Recommendation{
			ActionID:  "narrow_scope",
			Rationale: "The agency asked for a date range. Supplying one is the fastest way to restart processing.",
		}
	case hasBullet(evidence, "Agency says request is too broad"):
		return &Recommendation{
			ActionID:  "narrow_scope",
			Rationale: "The agency considers the request too broad. A narrower request avoids a likely denial.",
		}
	default:
		return nil
	}
}

// OrderActions returns the primary and secondary actions, recommended first.
// With no recommendation, or one naming neither action, the configured order
// and flags are kept.
func OrderActions(entry GateConfigEntry, rec *Recommendation) []ActionDescriptor {
	actions := []ActionDescriptor{entry.Primary, entry.Secondary}
	if rec == nil {
		return actions
	}

	idx := -1
	for i, a := range actions {
		if a.ID == rec.ActionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return actions
	}

	for i := range actions {
		actions[i].Recommended = i == idx
	}
	if idx > 0 {
		actions[0], actions[idx] = actions[idx], actions[0]
	}
	return actions
}
