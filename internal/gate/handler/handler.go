package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"foiagate/internal/gate"
	"foiagate/pkg/platform/httputil"
	"foiagate/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/gate-mocks.go -package=mocks Service

// Service defines the interface for gate operations.
type Service interface {
	Evaluate(ctx context.Context, req gate.EvaluateRequest) (*gate.Surface, error)
	Classify(ctx context.Context, c gate.CaseSnapshot) (*gate.ClassifyResult, error)
	Preview(ctx context.Context, req gate.PreviewRequest) (*gate.PreviewResult, error)
}

// Handler wires gate endpoints to the gate service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a gate handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts gate endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/gates/evaluate", h.HandleEvaluate)
	r.Post("/gates/classify", h.HandleClassify)
	r.Get("/gates/reasons", h.HandleListReasons)
	r.Post("/actions/preview", h.HandlePreview)
	r.Get("/review/{reason}/actions", h.HandleReviewActions)
}

// HandleEvaluate handles POST /gates/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	surface, err := h.service.Evaluate(ctx, gate.EvaluateRequest{
		Case:   req.Case,
		State:  req.ParsedState(),
		Regime: req.ParsedRegime(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "gate evaluation failed",
			"request_id", requestID,
			"case_id", req.Case.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	attrs := []any{
		"request_id", requestID,
		"case_id", surface.CaseID,
		"state", surface.State,
		"regime", surface.Regime,
	}
	if surface.Gate != nil {
		attrs = append(attrs, "reason", surface.Gate.Classification.Reason)
	}
	if surface.Review != nil {
		attrs = append(attrs, "review_reason", surface.Review.Reason)
	}
	attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
	h.logger.InfoContext(ctx, "gate evaluated", attrs...)

	httputil.WriteJSON(w, http.StatusOK, FromSurface(surface))
}

// HandleClassify handles POST /gates/classify requests.
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ClassifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Classify(ctx, req.Case)
	if err != nil {
		h.logger.ErrorContext(ctx, "gate classification failed",
			"request_id", requestID,
			"case_id", req.Case.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "gate classified",
		"request_id", requestID,
		"case_id", req.Case.ID,
		"reason", result.Classification.Reason,
		"quality", result.Classification.Quality,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromClassifyResult(result))
}

// HandlePreview handles POST /actions/preview requests.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[PreviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Preview(ctx, gate.PreviewRequest{
		Action: req.Action,
		Mode:   req.ParsedMode(),
		Agency: req.Agency,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "action preview failed",
			"request_id", requestID,
			"action_type", req.Action.Type,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "action previewed",
		"request_id", requestID,
		"action_type", result.Action.Type,
		"mode", result.Mode,
		"portal", result.Portal,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromPreviewResult(result))
}

// HandleListReasons handles GET /gates/reasons requests.
func (h *Handler) HandleListReasons(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromReasons())
}

// HandleReviewActions handles GET /review/{reason}/actions requests. Unknown
// reasons resolve to the GENERAL action set.
func (h *Handler) HandleReviewActions(w http.ResponseWriter, r *http.Request) {
	reason := gate.ParseReviewReason(chi.URLParam(r, "reason"))
	httputil.WriteJSON(w, http.StatusOK, FromReviewActions(reason, gate.ReviewActions(reason)))
}
