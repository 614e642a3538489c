package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"foiagate/internal/gate"
	"foiagate/internal/gate/handler/mocks"
	dErrors "foiagate/pkg/domain-errors"
	"foiagate/pkg/testutil"
)

type GateHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestGateHandlerSuite(t *testing.T) {
	suite.Run(t, new(GateHandlerSuite))
}

func (s *GateHandlerSuite) SetupTest() {
	s.router = newRouter(New(gate.NewService(), nil))
}

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func newMockRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	return newRouter(New(svc, nil)), svc
}

func float(v float64) *float64 { return &v }

func (s *GateHandlerSuite) TestEvaluate_FeeQuoteSurface() {
	t := s.T()
	body := map[string]any{
		"state": "decision_required",
		"case": map[string]any{
			"id":          "case-42",
			"cost_amount": 150,
			"fee_quote":   map[string]any{"deposit_amount": 50},
			"last_inbound": map[string]any{
				"body": "Body camera video is not subject to FOIA.",
			},
		},
	}
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(t, http.MethodPost, "/gates/evaluate", body))
	testutil.AssertStatusOK(t, rr)

	resp := testutil.UnmarshalResponse[SurfaceResponse](t, rr)
	assert.Equal(t, "case-42", resp.CaseID)
	assert.Equal(t, "decision", resp.Regime)
	require.NotNil(t, resp.Gate)
	assert.Nil(t, resp.Review)
	assert.Equal(t, "FEE_QUOTE", resp.Gate.Reason)
	assert.Equal(t, "classified", resp.Gate.Quality)
	assert.Equal(t, []string{
		"Fee estimate: $150",
		"Deposit required: $50",
		"BWC withheld (not subject to FOIA)",
	}, resp.Gate.Evidence)
	require.Len(t, resp.Gate.Actions, 2)
	assert.Equal(t, "negotiate_fee", resp.Gate.Actions[0].ID)
	assert.True(t, resp.Gate.Actions[0].Recommended)
	require.NotNil(t, resp.Gate.Recommendation)
	assert.Equal(t, "negotiate_fee", resp.Gate.Recommendation.ActionID)
}

func (s *GateHandlerSuite) TestEvaluate_ReviewRegime() {
	t := s.T()
	body := map[string]any{
		"state":  "decision_required",
		"regime": "review",
		"case":   map[string]any{"review_reason": "PORTAL_STUCK"},
	}
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(t, http.MethodPost, "/gates/evaluate", body))
	testutil.AssertStatusOK(t, rr)

	resp := testutil.UnmarshalResponse[SurfaceResponse](t, rr)
	assert.Nil(t, resp.Gate)
	require.NotNil(t, resp.Review)
	assert.Equal(t, "PORTAL_STUCK", resp.Review.Reason)
	assert.Equal(t, "check_portal_status", resp.Review.Actions[0].ID)
}

func (s *GateHandlerSuite) TestEvaluate_NoDecisionHasNoActions() {
	t := s.T()
	body := map[string]any{"state": "processing", "case": map[string]any{"cost_amount": 20}}
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(t, http.MethodPost, "/gates/evaluate", body))
	testutil.AssertStatusOK(t, rr)

	resp := testutil.UnmarshalResponse[SurfaceResponse](t, rr)
	assert.Equal(t, "processing", resp.State)
	assert.Nil(t, resp.Gate)
	assert.Nil(t, resp.Review)
}

func (s *GateHandlerSuite) TestEvaluate_Validation() {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"state":`, http.StatusBadRequest, "bad_request"},
		{"missing state", `{"case":{}}`, http.StatusBadRequest, "validation_error"},
		{"unknown state", `{"state":"paused","case":{}}`, http.StatusBadRequest, "validation_error"},
		{"unknown regime", `{"state":"decision_required","regime":"triage","case":{}}`, http.StatusBadRequest, "validation_error"},
		{"negative cost", `{"state":"decision_required","case":{"cost_amount":-5}}`, http.StatusBadRequest, "validation_error"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(t, http.MethodPost, "/gates/evaluate", tt.body))
			testutil.AssertStatusAndError(t, rr, tt.status, tt.code)
		})
	}
}

func (s *GateHandlerSuite) TestEvaluate_UnsupportedMediaType() {
	t := s.T()
	req := testutil.NewRequestWithBody(t, http.MethodPost, "/gates/evaluate", `{"state":"processing"}`)
	req.Header.Set("Content-Type", "text/plain")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(t, rr, http.StatusUnsupportedMediaType, "unsupported_media_type")
}

func (s *GateHandlerSuite) TestEvaluate_ServiceError() {
	t := s.T()
	router, svc := newMockRouter(t)
	svc.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.Wrap(context.DeadlineExceeded, dErrors.CodeTimeout, "evaluation aborted: context cancelled"))

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/gates/evaluate",
		map[string]any{"state": "decision_required", "case": map[string]any{}}))
	testutil.AssertStatusAndError(t, rr, http.StatusGatewayTimeout, "timeout")
}

func (s *GateHandlerSuite) TestEvaluate_PassesParsedValues() {
	t := s.T()
	router, svc := newMockRouter(t)
	svc.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req gate.EvaluateRequest) (*gate.Surface, error) {
			assert.Equal(t, gate.StateDecisionRequired, req.State)
			assert.Equal(t, gate.RegimeReview, req.Regime)
			assert.Equal(t, "case-1", req.Case.ID)
			return &gate.Surface{CaseID: req.Case.ID, State: req.State, Regime: req.Regime}, nil
		})

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/gates/evaluate",
		map[string]any{"state": " Decision_Required ", "regime": "REVIEW", "case": map[string]any{"id": " case-1 "}}))
	testutil.AssertStatusOK(t, rr)
}

func (s *GateHandlerSuite) TestClassify() {
	t := s.T()
	body := map[string]any{"case": map[string]any{
		"last_inbound": map[string]any{"body": "Your request is too broad. Please provide a date range."},
	}}
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(t, http.MethodPost, "/gates/classify", body))
	testutil.AssertStatusOK(t, rr)

	resp := testutil.UnmarshalResponse[ClassifyResponse](t, rr)
	assert.Equal(t, "SCOPE", resp.Reason)
	assert.Equal(t, "inbound", resp.Source)
	assert.Contains(t, resp.Evidence, "Agency asks for a date range")
}

func (s *GateHandlerSuite) TestClassify_EmptyCaseFallsBack() {
	t := s.T()
	rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(t, http.MethodPost, "/gates/classify", `{}`))
	testutil.AssertStatusOK(t, rr)

	resp := testutil.UnmarshalResponse[ClassifyResponse](t, rr)
	assert.Equal(t, "UNKNOWN", resp.Reason)
	assert.Equal(t, "fallback", resp.Quality)
	assert.NotNil(t, resp.Evidence)
}

func (s *GateHandlerSuite) TestClassify_ServiceError() {
	t := s.T()
	router, svc := newMockRouter(t)
	svc.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/gates/classify", `{}`))
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	errResp := testutil.UnmarshalErrorResponse(t, rr)
	assert.Equal(t, "internal_error", errResp["error"])
	assert.NotContains(t, errResp, "error_description")
}

func (s *GateHandlerSuite) TestPreview() {
	t := s.T()
	body := map[string]any{
		"action": map[string]any{"type": "withdraw"},
		"mode":   "live",
		"agency": map[string]any{"submission_method": "email"},
	}
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(t, http.MethodPost, "/actions/preview", body))
	testutil.AssertStatusOK(t, rr)

	resp := testutil.UnmarshalResponse[PreviewResponse](t, rr)
	assert.Equal(t, "LIVE", resp.Mode)
	assert.False(t, resp.Portal)
	assert.Equal(t, gate.PreviewCaveat, resp.Caveat)
	kinds := make([]gate.StepKind, 0, len(resp.Steps))
	for _, step := range resp.Steps {
		kinds = append(kinds, step.Kind)
	}
	assert.Equal(t, []gate.StepKind{gate.StepCreateExecution, gate.StepSendEmail, gate.StepUpdateStatus}, kinds)
}

func (s *GateHandlerSuite) TestPreview_OmittedModeUsesServiceDefault() {
	t := s.T()
	router, svc := newMockRouter(t)
	svc.EXPECT().Preview(gomock.Any(), gate.PreviewRequest{
		Action: gate.NextAction{Type: gate.ActionSendFollowup, Confidence: float(0.8)},
	}).Return(&gate.PreviewResult{Mode: gate.ModeDry}, nil)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/actions/preview",
		map[string]any{"action": map[string]any{"type": "send_followup", "confidence": 0.8}}))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "mode", "DRY")
}

func (s *GateHandlerSuite) TestPreview_Validation() {
	tests := []struct {
		name string
		body string
	}{
		{"missing type", `{"action":{}}`},
		{"bad mode", `{"action":{"type":"SEND_APPEAL"},"mode":"staging"}`},
		{"bad confidence", `{"action":{"type":"SEND_APPEAL","confidence":1.5}}`},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(t, http.MethodPost, "/actions/preview", tt.body))
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
		})
	}
}

func (s *GateHandlerSuite) TestListReasons() {
	t := s.T()
	rr := testutil.DoRequest(s.router, testutil.NewRequest(t, http.MethodGet, "/gates/reasons"))
	testutil.AssertStatusOK(t, rr)

	resp := testutil.UnmarshalResponse[ReasonsResponse](t, rr)
	require.Len(t, resp.Reasons, len(gate.GateReasons))
	assert.Equal(t, "FEE_QUOTE", resp.Reasons[0].Reason)
	assert.Equal(t, "UNKNOWN", resp.Reasons[len(resp.Reasons)-1].Reason)
	for _, r := range resp.Reasons {
		assert.NotEmpty(t, r.Title, r.Reason)
	}
}

func (s *GateHandlerSuite) TestReviewActions() {
	t := s.T()
	rr := testutil.DoRequest(s.router, testutil.NewRequest(t, http.MethodGet, "/review/portal_failed/actions"))
	testutil.AssertStatusOK(t, rr)

	resp := testutil.UnmarshalResponse[ReviewResponse](t, rr)
	assert.Equal(t, "PORTAL_FAILED", resp.Reason)
	ids := make([]string, 0, len(resp.Actions))
	for _, a := range resp.Actions {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "cancel_portal")
}

func (s *GateHandlerSuite) TestReviewActions_UnknownReasonFallsBackToGeneral() {
	t := s.T()
	rr := testutil.DoRequest(s.router, testutil.NewRequest(t, http.MethodGet, "/review/something_else/actions"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "reason", "GENERAL")
}

func (s *GateHandlerSuite) TestEvaluate_UsesRequestTime() {
	t := s.T()
	now := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/gates/evaluate",
		map[string]any{"state": "no_decision", "case": map[string]any{"id": "case-3"}})
	req = testutil.WithRequestTime(testutil.WithRequestID(req, "req-123"), now)

	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(t, rr)

	resp := testutil.UnmarshalResponse[SurfaceResponse](t, rr)
	assert.True(t, now.Equal(resp.EvaluatedAt))
	assert.Equal(t, "no_decision", resp.State)
}
