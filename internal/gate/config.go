package gate

import "fmt"

// Tone is the badge color hint for a gate.
type Tone string

const (
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneNeutral Tone = "neutral"
)

// ActionDescriptor is one button offered to the reviewer.
type ActionDescriptor struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Recommended bool       `json:"recommended"`
	ActionType  ActionType `json:"action_type,omitempty"`
}

// GateConfigEntry is the static presentation and action set for one reason.
// Entries are never mutated; callers receive copies.
type GateConfigEntry struct {
	Reason      GateReason
	Title       string
	Description string
	Tone        Tone
	Question    func(CaseSnapshot) string
	Primary     ActionDescriptor
	Secondary   ActionDescriptor
	Overflow    []ActionDescriptor
}

var withdrawAction = ActionDescriptor{
	ID:          "withdraw",
	Label:       "Withdraw request",
	Description: "Withdraw the request and stop all correspondence.",
	ActionType:  ActionWithdraw,
}

var gateConfigs = map[GateReason]GateConfigEntry{
	ReasonFeeQuote: {
		Reason:      ReasonFeeQuote,
		Title:       "Fee quote received",
		Description: "The agency wants payment before it continues.",
		Tone:        ToneWarning,
		Question:    feeQuoteQuestion,
		Primary: ActionDescriptor{
			ID:          "approve_fee",
			Label:       "Approve fee",
			Description: "Accept the quoted fee and authorize payment.",
			Recommended: true,
			ActionType:  ActionAcceptFee,
		},
		Secondary: ActionDescriptor{
			ID:          "negotiate_fee",
			Label:       "Negotiate",
			Description: "Ask the agency to reduce or waive the fee.",
			ActionType:  ActionNegotiateFee,
		},
		Overflow: []ActionDescriptor{
			{
				ID:          "decline_fee",
				Label:       "Decline fee",
				Description: "Decline the fee and ask for whatever can be released at no cost.",
				ActionType:  ActionDeclineFee,
			},
			withdrawAction,
		},
	},
	ReasonDenial: {
		Reason:      ReasonDenial,
		Title:       "Request denied",
		Description: "The agency refused some or all of the request.",
		Tone:        ToneDanger,
		Question:    staticQuestion("The agency denied this request. How should we respond?"),
		Primary: ActionDescriptor{
			ID:          "appeal",
			Label:       "File appeal",
			Description: "Send an administrative appeal challenging the denial.",
			Recommended: true,
			ActionType:  ActionSendAppeal,
		},
		Secondary: ActionDescriptor{
			ID:          "rebut",
			Label:       "Send rebuttal",
			Description: "Reply disputing the grounds for denial before appealing.",
			ActionType:  ActionSendRebuttal,
		},
		Overflow: []ActionDescriptor{
			{
				ID:          "narrow_resubmit",
				Label:       "Narrow and resubmit",
				Description: "Resubmit a narrower request that avoids the cited grounds.",
				ActionType:  ActionSendClarification,
			},
			{
				ID:          "accept_denial",
				Label:       "Accept denial",
				Description: "Close the request without further correspondence.",
				ActionType:  ActionCloseCase,
			},
			withdrawAction,
		},
	},
	ReasonScope: {
		Reason:      ReasonScope,
		Title:       "Scope clarification",
		Description: "The agency needs a narrower or clearer request.",
		Tone:        ToneInfo,
		Question:    staticQuestion("The agency says the request needs narrowing or clarification. How should we respond?"),
		Primary: ActionDescriptor{
			ID:          "narrow_scope",
			Label:       "Narrow scope",
			Description: "Reply with a narrower request the agency can process.",
			Recommended: true,
			ActionType:  ActionSendClarification,
		},
		Secondary: ActionDescriptor{
			ID:          "clarify",
			Label:       "Clarify request",
			Description: "Explain the original request without reducing it.",
			ActionType:  ActionSendClarification,
		},
		Overflow: []ActionDescriptor{withdrawAction},
	},
	ReasonIDRequired: {
		Reason:      ReasonIDRequired,
		Title:       "Identity verification",
		Description: "The agency asked for proof of identity.",
		Tone:        ToneInfo,
		Question:    staticQuestion("The agency requires proof of identity before releasing records. How should we respond?"),
		Primary: ActionDescriptor{
			ID:          "provide_id",
			Label:       "Provide identification",
			Description: "Send the requested identification to the agency.",
			Recommended: true,
			ActionType:  ActionSendIdentification,
		},
		Secondary: ActionDescriptor{
			ID:          "dispute_id",
			Label:       "Dispute requirement",
			Description: "Argue that identity is not required for this request.",
			ActionType:  ActionSendRebuttal,
		},
		Overflow: []ActionDescriptor{withdrawAction},
	},
	ReasonSensitive: {
		Reason:      ReasonSensitive,
		Title:       "Sensitive content",
		Description: "The drafted reply touches sensitive material.",
		Tone:        ToneWarning,
		Question:    staticQuestion("This reply touches sensitive material and needs your review before it goes out. Approve it?"),
		Primary: ActionDescriptor{
			ID:          "approve_send",
			Label:       "Approve and send",
			Description: "Send the drafted reply as written.",
			Recommended: true,
			ActionType:  ActionSendFollowup,
		},
		Secondary: ActionDescriptor{
			ID:          "edit_draft",
			Label:       "Edit draft",
			Description: "Revise the draft before anything is sent.",
		},
		Overflow: []ActionDescriptor{
			{
				ID:          "hold",
				Label:       "Hold",
				Description: "Keep the request paused without replying.",
				ActionType:  ActionNone,
			},
			withdrawAction,
		},
	},
	ReasonCloseAction: {
		Reason:      ReasonCloseAction,
		Title:       "Ready to close",
		Description: "The agency appears to have finished the request.",
		Tone:        ToneSuccess,
		Question:    staticQuestion("The agency appears to have completed this request. Close it?"),
		Primary: ActionDescriptor{
			ID:          "close_case",
			Label:       "Close request",
			Description: "Mark the request as complete.",
			Recommended: true,
			ActionType:  ActionCloseCase,
		},
		Secondary: ActionDescriptor{
			ID:          "keep_open",
			Label:       "Keep open",
			Description: "Leave the request open and send a follow-up.",
			ActionType:  ActionSendFollowup,
		},
		Overflow: []ActionDescriptor{withdrawAction},
	},
	ReasonUnknown: {
		Reason:      ReasonUnknown,
		Title:       "Decision needed",
		Description: "The request is paused and the reason could not be determined.",
		Tone:        ToneNeutral,
		Question:    staticQuestion("This request is paused and needs your decision. How should we proceed?"),
		Primary: ActionDescriptor{
			ID:          "proceed",
			Label:       "Proceed",
			Description: "Continue with the proposed next action.",
			ActionType:  ActionSendFollowup,
		},
		Secondary: ActionDescriptor{
			ID:          "negotiate",
			Label:       "Negotiate",
			Description: "Reply to the agency to negotiate terms.",
			ActionType:  ActionNegotiateFee,
		},
		Overflow: []ActionDescriptor{withdrawAction},
	},
}

// GateConfig returns the entry for reason. Unrecognized reasons get the
// UNKNOWN entry, so there is always a question and something to click.
func GateConfig(reason GateReason) GateConfigEntry {
	entry, ok := gateConfigs[reason]
	if !ok {
		entry = gateConfigs[ReasonUnknown]
	}
	entry.Overflow = append([]ActionDescriptor(nil), entry.Overflow...)
	return entry
}

func staticQuestion(q string) func(CaseSnapshot) string {
	return func(CaseSnapshot) string { return q }
}

func feeQuoteQuestion(c CaseSnapshot) string {
	fee, ok := quotedFee(c)
	if !ok {
		return "The agency is requesting payment. How do you want to proceed?"
	}

	q := fmt.Sprintf("The agency quoted a fee of %s", FormatUSD(fee))
	if c.FeeQuote != nil {
		if dep, ok := positive(c.FeeQuote.DepositAmount); ok {
			q += fmt.Sprintf(" with a %s deposit", FormatUSD(dep))
		}
	}
	q += ". Do you want to pay it?"

	if c.Agency != nil {
		if limit, ok := positive(c.Agency.FeeAutoApproveThreshold); ok && fee <= limit {
			q += fmt.Sprintf(" It is within the agency's auto-approve limit of %s.", FormatUSD(limit))
		}
	}
	return q
}
