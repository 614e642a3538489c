package handler

import (
	"time"

	"foiagate/internal/gate"
)

// SurfaceResponse is the HTTP response for POST /gates/evaluate.
type SurfaceResponse struct {
	CaseID      string          `json:"case_id,omitempty"`
	State       string          `json:"state"`
	Regime      string          `json:"regime"`
	Gate        *GateResponse   `json:"gate,omitempty"`
	Review      *ReviewResponse `json:"review,omitempty"`
	EvaluatedAt time.Time       `json:"evaluated_at"`
}

// GateResponse is the decision-regime portion of a surface.
type GateResponse struct {
	Reason         string                  `json:"reason"`
	Quality        string                  `json:"quality"`
	Source         string                  `json:"source"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	Tone           string                  `json:"tone"`
	Question       string                  `json:"question"`
	Evidence       []string                `json:"evidence"`
	Actions        []gate.ActionDescriptor `json:"actions"`
	Overflow       []gate.ActionDescriptor `json:"overflow"`
	Recommendation *gate.Recommendation    `json:"recommendation,omitempty"`
}

// ReviewResponse is the review-regime portion of a surface, also returned by
// GET /review/{reason}/actions.
type ReviewResponse struct {
	Reason  string              `json:"reason"`
	Actions []gate.ReviewAction `json:"actions"`
}

// ClassifyResponse is the HTTP response for POST /gates/classify.
type ClassifyResponse struct {
	Reason   string   `json:"reason"`
	Quality  string   `json:"quality"`
	Source   string   `json:"source"`
	Evidence []string `json:"evidence"`
}

// PreviewResponse is the HTTP response for POST /actions/preview.
type PreviewResponse struct {
	Action gate.NextAction    `json:"action"`
	Mode   string             `json:"mode"`
	Portal bool               `json:"portal"`
	Steps  []gate.PreviewStep `json:"steps"`
	Caveat string             `json:"caveat"`
}

// ReasonResponse describes one gate reason for GET /gates/reasons.
type ReasonResponse struct {
	Reason string `json:"reason"`
	Title  string `json:"title"`
	Tone   string `json:"tone"`
}

// ReasonsResponse is the HTTP response for GET /gates/reasons.
type ReasonsResponse struct {
	Reasons []ReasonResponse `json:"reasons"`
}

// FromSurface converts a domain Surface to an HTTP response.
func FromSurface(s *gate.Surface) *SurfaceResponse {
	resp := &SurfaceResponse{
		CaseID:      s.CaseID,
		State:       string(s.State),
		Regime:      string(s.Regime),
		EvaluatedAt: s.EvaluatedAt,
	}
	if g := s.Gate; g != nil {
		resp.Gate = &GateResponse{
			Reason:         string(g.Classification.Reason),
			Quality:        string(g.Classification.Quality),
			Source:         string(g.Classification.Source),
			Title:          g.Title,
			Description:    g.Description,
			Tone:           string(g.Tone),
			Question:       g.Question,
			Evidence:       nonNil(g.Evidence),
			Actions:        g.Actions,
			Overflow:       nonNil(g.Overflow),
			Recommendation: g.Recommendation,
		}
	}
	if rv := s.Review; rv != nil {
		resp.Review = FromReviewActions(rv.Reason, rv.Actions)
	}
	return resp
}

// FromReviewActions converts a review reason and its actions to a response.
func FromReviewActions(reason gate.ReviewReason, actions []gate.ReviewAction) *ReviewResponse {
	return &ReviewResponse{Reason: string(reason), Actions: nonNil(actions)}
}

// FromClassifyResult converts a domain ClassifyResult to an HTTP response.
func FromClassifyResult(res *gate.ClassifyResult) *ClassifyResponse {
	return &ClassifyResponse{
		Reason:   string(res.Classification.Reason),
		Quality:  string(res.Classification.Quality),
		Source:   string(res.Classification.Source),
		Evidence: nonNil(res.Evidence),
	}
}

// FromPreviewResult converts a domain PreviewResult to an HTTP response.
func FromPreviewResult(res *gate.PreviewResult) *PreviewResponse {
	return &PreviewResponse{
		Action: res.Action,
		Mode:   string(res.Mode),
		Portal: res.Portal,
		Steps:  nonNil(res.Steps),
		Caveat: res.Caveat,
	}
}

// FromReasons lists every gate reason, UNKNOWN last.
func FromReasons() *ReasonsResponse {
	reasons := make([]ReasonResponse, 0, len(gate.GateReasons))
	for _, r := range gate.GateReasons {
		entry := gate.GateConfig(r)
		reasons = append(reasons, ReasonResponse{
			Reason: string(r),
			Title:  entry.Title,
			Tone:   string(entry.Tone),
		})
	}
	return &ReasonsResponse{Reasons: reasons}
}

// nonNil keeps empty lists rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
