package gate

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"foiagate/internal/gate/metrics"
	dErrors "foiagate/pkg/domain-errors"
	"foiagate/pkg/requestcontext"
)

const tracerName = "foiagate/internal/gate"

// EvaluateRequest is a case snapshot plus the upstream state it is rendered for.
type EvaluateRequest struct {
	Case   CaseSnapshot
	State  MacroState
	Regime Regime
}

// Surface is everything the reviewer is shown for one case. Gate is set in the
// decision regime and Review in the review regime; neither is set unless a
// decision is required.
type Surface struct {
	CaseID      string
	State       MacroState
	Regime      Regime
	Gate        *GateSurface
	Review      *ReviewSurface
	EvaluatedAt time.Time
}

// GateSurface is the decision-regime view.
type GateSurface struct {
	Classification Classification
	Title          string
	Description    string
	Tone           Tone
	Question       string
	Evidence       []string
	Actions        []ActionDescriptor
	Overflow       []ActionDescriptor
	Recommendation *Recommendation
}

// ReviewSurface is the review-regime view.
type ReviewSurface struct {
	Reason  ReviewReason
	Actions []ReviewAction
}

// ClassifyResult is the classification and its supporting evidence.
type ClassifyResult struct {
	Classification Classification
	Evidence       []string
}

// PreviewRequest asks what approving a proposed action would do. An empty
// Mode uses the service default.
type PreviewRequest struct {
	Action NextAction
	Mode   ExecutionMode
	Agency *Agency
}

// PreviewResult is the ordered step list plus the drift caveat.
type PreviewResult struct {
	Action NextAction
	Mode   ExecutionMode
	Portal bool
	Steps  []PreviewStep
	Caveat string
}

// Service assembles decision surfaces and previews from the pure engine
// functions, adding logging, metrics and tracing.
type Service struct {
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	defaultMode ExecutionMode
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDefaultMode sets the execution mode used by previews that omit one.
func WithDefaultMode(mode ExecutionMode) Option {
	return func(s *Service) {
		s.defaultMode = mode
	}
}

// NewService constructs a Service. Without options it logs nowhere, records
// no metrics and previews in DRY mode.
func NewService(opts ...Option) *Service {
	s := &Service{defaultMode: ModeDry}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.tracer = otel.Tracer(tracerName)
	return s
}

// Evaluate builds the decision surface for a case. It only fails when ctx is
// already done.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "evaluation aborted: context cancelled")
	}
	ctx, span := s.tracer.Start(ctx, "gate.Evaluate", trace.WithAttributes(
		attribute.String("case.id", req.Case.ID),
		attribute.String("gate.state", string(req.State)),
		attribute.String("gate.regime", string(req.Regime)),
	))
	defer span.End()

	start := time.Now()
	surface := &Surface{
		CaseID:      req.Case.ID,
		State:       req.State,
		Regime:      req.Regime,
		EvaluatedAt: requestcontext.Now(ctx),
	}
	if req.State != StateDecisionRequired {
		return surface, nil
	}

	switch req.Regime {
	case RegimeReview:
		reason := ParseReviewReason(req.Case.ReviewReason)
		span.SetAttributes(attribute.String("gate.review_reason", string(reason)))
		surface.Review = &ReviewSurface{Reason: reason, Actions: ReviewActions(reason)}
	default:
		surface.Gate = s.buildGate(ctx, req.Case)
		span.SetAttributes(
			attribute.String("gate.reason", string(surface.Gate.Classification.Reason)),
			attribute.Int("gate.evidence", len(surface.Gate.Evidence)),
		)
	}

	s.metrics.ObserveEvaluateLatency(time.Since(start))
	return surface, nil
}

// Classify resolves the gate reason and evidence without building actions.
func (s *Service) Classify(ctx context.Context, c CaseSnapshot) (*ClassifyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "classification aborted: context cancelled")
	}
	_, span := s.tracer.Start(ctx, "gate.Classify")
	defer span.End()

	cls := s.classify(ctx, c)
	span.SetAttributes(attribute.String("gate.reason", string(cls.Reason)))
	return &ClassifyResult{
		Classification: cls,
		Evidence:       ExtractEvidence(c, c.LastInbound, cls.Reason),
	}, nil
}

// Preview lists the consequences of approving a proposed action.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (*PreviewResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "preview aborted: context cancelled")
	}
	_, span := s.tracer.Start(ctx, "gate.Preview")
	defer span.End()

	mode := req.Mode
	if mode == "" {
		mode = s.defaultMode
	}
	portal := IsPortalAgency(req.Agency, req.Action)
	span.SetAttributes(
		attribute.String("action.type", string(req.Action.Type)),
		attribute.String("action.mode", string(mode)),
		attribute.Bool("action.portal", portal),
	)

	channel := "email"
	if portal {
		channel = "portal"
	}
	s.metrics.IncrementPreview(channel, string(mode))

	return &PreviewResult{
		Action: req.Action,
		Mode:   mode,
		Portal: portal,
		Steps:  BuildPreview(req.Action, mode, portal),
		Caveat: PreviewCaveat,
	}, nil
}

func (s *Service) buildGate(ctx context.Context, c CaseSnapshot) *GateSurface {
	cls := s.classify(ctx, c)
	evidence := ExtractEvidence(c, c.LastInbound, cls.Reason)
	entry := GateConfig(cls.Reason)
	rec := Score(cls.Reason, c, evidence)

	s.metrics.ObserveEvidence(len(evidence))
	if rec != nil {
		s.metrics.IncrementRecommendation(string(cls.Reason), rec.ActionID)
	}

	return &GateSurface{
		Classification: cls,
		Title:          entry.Title,
		Description:    entry.Description,
		Tone:           entry.Tone,
		Question:       entry.Question(c),
		Evidence:       evidence,
		Actions:        OrderActions(entry, rec),
		Overflow:       entry.Overflow,
		Recommendation: rec,
	}
}

func (s *Service) classify(ctx context.Context, c CaseSnapshot) Classification {
	cls := Classify(c.PauseReason, c, c.LastInbound)
	s.metrics.IncrementClassification(string(cls.Reason), string(cls.Quality))

	if cls.Quality == QualityFallback {
		s.logger.WarnContext(ctx, "gate reason unresolved, using fallback",
			"request_id", requestcontext.RequestID(ctx),
			"case_id", c.ID,
		)
		return cls
	}
	s.logger.DebugContext(ctx, "gate reason classified",
		"request_id", requestcontext.RequestID(ctx),
		"case_id", c.ID,
		"reason", cls.Reason,
		"source", cls.Source,
	)
	return cls
}
