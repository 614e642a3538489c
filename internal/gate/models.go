package gate

import (
	"strings"
	"time"
)

// GateReason is the canonical classification of why a request is paused for a
// human decision.
type GateReason string

const (
	ReasonFeeQuote    GateReason = "FEE_QUOTE"
	ReasonDenial      GateReason = "DENIAL"
	ReasonScope       GateReason = "SCOPE"
	ReasonIDRequired  GateReason = "ID_REQUIRED"
	ReasonSensitive   GateReason = "SENSITIVE"
	ReasonCloseAction GateReason = "CLOSE_ACTION"
	// ReasonUnknown is returned when no signal resolves confidently.
	ReasonUnknown GateReason = "UNKNOWN"
)

// GateReasons lists every canonical reason, UNKNOWN last.
var GateReasons = []GateReason{
	ReasonFeeQuote,
	ReasonDenial,
	ReasonScope,
	ReasonIDRequired,
	ReasonSensitive,
	ReasonCloseAction,
	ReasonUnknown,
}

// IsValid checks if the reason is one of the supported enum values.
func (r GateReason) IsValid() bool {
	switch r {
	case ReasonFeeQuote, ReasonDenial, ReasonScope, ReasonIDRequired,
		ReasonSensitive, ReasonCloseAction, ReasonUnknown:
		return true
	}
	return false
}

func (r GateReason) String() string {
	return string(r)
}

// ReviewReason classifies operational-failure pauses. It is a separate regime
// from GateReason and the two are never merged.
type ReviewReason string

const (
	ReviewPortalFailed ReviewReason = "PORTAL_FAILED"
	ReviewPortalStuck  ReviewReason = "PORTAL_STUCK"
	ReviewFeeQuote     ReviewReason = "FEE_QUOTE"
	ReviewDenial       ReviewReason = "DENIAL"
	ReviewMissingInfo  ReviewReason = "MISSING_INFO"
	ReviewGeneral      ReviewReason = "GENERAL"
)

// ReviewReasons lists every review reason.
var ReviewReasons = []ReviewReason{
	ReviewPortalFailed,
	ReviewPortalStuck,
	ReviewFeeQuote,
	ReviewDenial,
	ReviewMissingInfo,
	ReviewGeneral,
}

// IsValid checks if the review reason is one of the supported enum values.
func (r ReviewReason) IsValid() bool {
	switch r {
	case ReviewPortalFailed, ReviewPortalStuck, ReviewFeeQuote,
		ReviewDenial, ReviewMissingInfo, ReviewGeneral:
		return true
	}
	return false
}

// ParseReviewReason maps a raw review-reason field onto the enumeration.
// Anything unrecognized, including an empty value, is GENERAL.
func ParseReviewReason(s string) ReviewReason {
	r := ReviewReason(strings.ToUpper(strings.TrimSpace(s)))
	if r.IsValid() {
		return r
	}
	return ReviewGeneral
}

// Quality tells the reviewer how the reason was reached.
type Quality string

const (
	QualityClassified Quality = "classified"
	QualityFallback   Quality = "fallback"
)

// Source names the rule family that produced a classification.
type Source string

const (
	SourceRawReason  Source = "raw_reason"
	SourceSubstatus  Source = "substatus"
	SourceStructured Source = "structured"
	SourceInbound    Source = "inbound"
	SourceNone       Source = "none"
)

// Classification is the normalizer output plus its provenance.
type Classification struct {
	Reason  GateReason `json:"reason"`
	Quality Quality    `json:"quality"`
	Source  Source     `json:"source"`
}

// ScopeStatus is the disclosure status of one requested record category.
type ScopeStatus string

const (
	ScopeAvailable ScopeStatus = "AVAILABLE"
	ScopeExempt    ScopeStatus = "EXEMPT"
	ScopeNotHeld   ScopeStatus = "NOT_HELD"
	ScopeWithheld  ScopeStatus = "WITHHELD"
	ScopePending   ScopeStatus = "PENDING"
	ScopeDelivered ScopeStatus = "DELIVERED"
)

// Unavailable reports whether the agency says it cannot release the item.
func (s ScopeStatus) Unavailable() bool {
	switch ScopeStatus(strings.ToUpper(string(s))) {
	case ScopeNotHeld, ScopeWithheld:
		return true
	}
	return false
}

// ScopeItem is one requested record category.
type ScopeItem struct {
	Name   string      `json:"name"`
	Status ScopeStatus `json:"status"`
}

// FeeQuote is the agency's structured fee quote.
type FeeQuote struct {
	Amount        *float64 `json:"amount,omitempty"`
	DepositAmount *float64 `json:"deposit_amount,omitempty"`
}

// InboundMessage is a message received from the agency. The engine only reads it.
type InboundMessage struct {
	From        string    `json:"from,omitempty"`
	Body        string    `json:"body"`
	SentAt      time.Time `json:"sent_at"`
	Attachments []string  `json:"attachments,omitempty"`
}

// Agency carries the agency fields that influence questions and previews.
type Agency struct {
	SubmissionMethod        string   `json:"submission_method,omitempty"`
	FeeAutoApproveThreshold *float64 `json:"fee_auto_approve_threshold,omitempty"`
	AlwaysHumanGates        []string `json:"always_human_gates,omitempty"`
}

// IsPortal reports whether the agency takes submissions through a web portal.
func (a *Agency) IsPortal() bool {
	return a != nil && strings.EqualFold(strings.TrimSpace(a.SubmissionMethod), "portal")
}

// CaseSnapshot is the read-only view of one records request at evaluation time.
// Every field may be absent; absent fields contribute no evidence.
type CaseSnapshot struct {
	ID            string          `json:"id,omitempty"`
	PauseReason   *string         `json:"pause_reason,omitempty"`
	Substatus     string          `json:"substatus,omitempty"`
	CostAmount    *float64        `json:"cost_amount,omitempty"`
	FeeQuote      *FeeQuote       `json:"fee_quote,omitempty"`
	CostStatus    string          `json:"cost_status,omitempty"`
	ReviewReason  string          `json:"review_reason,omitempty"`
	RequiresHuman bool            `json:"requires_human,omitempty"`
	ScopeItems    []ScopeItem     `json:"scope_items,omitempty"`
	Agency        *Agency         `json:"agency,omitempty"`
	LastInbound   *InboundMessage `json:"last_inbound,omitempty"`
}

// MacroState is the upstream workflow state the surface is rendered for.
type MacroState string

const (
	StateDecisionRequired MacroState = "decision_required"
	StateProcessing       MacroState = "processing"
	StateApplyingDecision MacroState = "applying_decision"
	StateNoDecision       MacroState = "no_decision"
)

// IsValid checks if the state is one of the supported enum values.
func (s MacroState) IsValid() bool {
	switch s {
	case StateDecisionRequired, StateProcessing, StateApplyingDecision, StateNoDecision:
		return true
	}
	return false
}

// Regime selects which taxonomy applies to a paused case.
type Regime string

const (
	RegimeDecision Regime = "decision"
	RegimeReview   Regime = "review"
)

// IsValid checks if the regime is one of the supported enum values.
func (r Regime) IsValid() bool {
	return r == RegimeDecision || r == RegimeReview
}

// ExecutionMode controls whether approved actions actually send correspondence.
type ExecutionMode string

const (
	ModeDry  ExecutionMode = "DRY"
	ModeLive ExecutionMode = "LIVE"
)

// ParseExecutionMode returns LIVE only for an explicit "live"; everything else
// is DRY.
func ParseExecutionMode(s string) ExecutionMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeLive)) {
		return ModeLive
	}
	return ModeDry
}

// ActionType is the kind of action the copilot proposes or a button triggers.
type ActionType string

const (
	ActionSendInitialRequest ActionType = "SEND_INITIAL_REQUEST"
	ActionSendFollowup       ActionType = "SEND_FOLLOWUP"
	ActionSendClarification  ActionType = "SEND_CLARIFICATION"
	ActionSendRebuttal       ActionType = "SEND_REBUTTAL"
	ActionSendAppeal         ActionType = "SEND_APPEAL"
	ActionSendIdentification ActionType = "SEND_IDENTIFICATION"
	ActionAcceptFee          ActionType = "ACCEPT_FEE"
	ActionNegotiateFee       ActionType = "NEGOTIATE_FEE"
	ActionDeclineFee         ActionType = "DECLINE_FEE"
	ActionCloseCase          ActionType = "CLOSE_CASE"
	ActionWithdraw           ActionType = "WITHDRAW"
	ActionNone               ActionType = "NONE"
)

// IsWithdrawal reports whether the action withdraws the request.
func (t ActionType) IsWithdrawal() bool {
	return strings.EqualFold(strings.TrimSpace(string(t)), string(ActionWithdraw))
}

// NextAction is the copilot's proposed next step, as supplied by the backend.
type NextAction struct {
	Type           ActionType `json:"type"`
	Reasoning      []string   `json:"reasoning,omitempty"`
	Confidence     *float64   `json:"confidence,omitempty"`
	RiskFlags      []string   `json:"risk_flags,omitempty"`
	Warnings       []string   `json:"warnings,omitempty"`
	DraftSubject   string     `json:"draft_subject,omitempty"`
	DraftBody      string     `json:"draft_body,omitempty"`
	Recipient      string     `json:"recipient,omitempty"`
	Channel        string     `json:"channel,omitempty"`
	PortalProvider string     `json:"portal_provider,omitempty"`
}

// IsPortalAgency decides whether a preview should describe a portal task rather
// than an email.
func IsPortalAgency(agency *Agency, action NextAction) bool {
	if agency.IsPortal() {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(action.Channel), "portal") {
		return true
	}
	return strings.TrimSpace(action.PortalProvider) != ""
}
