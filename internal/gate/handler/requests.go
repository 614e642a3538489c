package handler

import (
	"strings"

	"foiagate/internal/gate"
	dErrors "foiagate/pkg/domain-errors"
)

// maxCaseIDLength bounds the opaque case identifier echoed back in responses.
const maxCaseIDLength = 128

// EvaluateRequest is the HTTP request body for POST /gates/evaluate.
type EvaluateRequest struct {
	Case   gate.CaseSnapshot `json:"case"`
	State  string            `json:"state"`
	Regime string            `json:"regime"`

	// Parsed values (populated by Validate)
	parsedState  gate.MacroState
	parsedRegime gate.Regime
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if err := validateCase(&r.Case); err != nil {
		return err
	}

	state := gate.MacroState(strings.ToLower(strings.TrimSpace(r.State)))
	if state == "" {
		return dErrors.New(dErrors.CodeValidation, "state is required")
	}
	if !state.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "state must be one of decision_required, processing, applying_decision, no_decision")
	}
	r.parsedState = state

	// Regime defaults to the decision taxonomy
	regime := gate.Regime(strings.ToLower(strings.TrimSpace(r.Regime)))
	if regime == "" {
		regime = gate.RegimeDecision
	}
	if !regime.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "regime must be decision or review")
	}
	r.parsedRegime = regime
	return nil
}

// ParsedState returns the validated macro-state.
func (r *EvaluateRequest) ParsedState() gate.MacroState {
	return r.parsedState
}

// ParsedRegime returns the validated regime.
func (r *EvaluateRequest) ParsedRegime() gate.Regime {
	return r.parsedRegime
}

// ClassifyRequest is the HTTP request body for POST /gates/classify.
type ClassifyRequest struct {
	Case gate.CaseSnapshot `json:"case"`
}

// Validate implements the Validatable interface.
func (r *ClassifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return validateCase(&r.Case)
}

// PreviewRequest is the HTTP request body for POST /actions/preview.
type PreviewRequest struct {
	Action gate.NextAction `json:"action"`
	Mode   string          `json:"mode,omitempty"`
	Agency *gate.Agency    `json:"agency,omitempty"`

	parsedMode gate.ExecutionMode
}

// Validate implements the Validatable interface. An omitted mode leaves the
// choice to the service default.
func (r *PreviewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Action.Type = gate.ActionType(strings.ToUpper(strings.TrimSpace(string(r.Action.Type))))
	if r.Action.Type == "" {
		return dErrors.New(dErrors.CodeValidation, "action.type is required")
	}
	if c := r.Action.Confidence; c != nil && (*c < 0 || *c > 1) {
		return dErrors.New(dErrors.CodeValidation, "action.confidence must be between 0 and 1")
	}

	mode := strings.ToUpper(strings.TrimSpace(r.Mode))
	switch gate.ExecutionMode(mode) {
	case "":
	case gate.ModeDry, gate.ModeLive:
		r.parsedMode = gate.ExecutionMode(mode)
	default:
		return dErrors.New(dErrors.CodeValidation, "mode must be DRY or LIVE")
	}
	return nil
}

// ParsedMode returns the validated execution mode, empty when omitted.
func (r *PreviewRequest) ParsedMode() gate.ExecutionMode {
	return r.parsedMode
}

func validateCase(c *gate.CaseSnapshot) error {
	c.ID = strings.TrimSpace(c.ID)
	if len(c.ID) > maxCaseIDLength {
		return dErrors.New(dErrors.CodeValidation, "case.id must be at most 128 characters")
	}
	if c.CostAmount != nil && *c.CostAmount < 0 {
		return dErrors.New(dErrors.CodeValidation, "case.cost_amount must not be negative")
	}
	return nil
}
