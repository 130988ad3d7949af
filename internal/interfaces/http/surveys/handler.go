package surveys

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	surveyapp "github.com/mailpoll/mailpoll-services/api/internal/survey/application"
)

// Handler wires the survey HTTP endpoints to application services.
type Handler struct {
	logger    *log.Logger
	queries   surveyapp.SurveyQueryService
	dispatch  surveyapp.SurveyDispatchService
	reconcile surveyapp.ReconcileService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger    *log.Logger
	Queries   surveyapp.SurveyQueryService
	Dispatch  surveyapp.SurveyDispatchService
	Reconcile surveyapp.ReconcileService
}

// NewHandler constructs the survey HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:    cfg.Logger,
		queries:   cfg.Queries,
		dispatch:  cfg.Dispatch,
		reconcile: cfg.Reconcile,
	}
}

// Register mounts the survey routes. The webhook and the click-through
// acknowledgment stay outside the auth middleware: the provider calls the
// former and recipients' mail clients open the latter.
func (h *Handler) Register(r chi.Router, authMiddleware, creditsMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/surveys", func(r chi.Router) {
		r.With(authMiddleware).Get("/", h.listHandler())
		r.With(authMiddleware, creditsMiddleware).Post("/", h.createHandler())
		r.Post("/webhooks", h.webhookHandler())
		r.Get("/{surveyId}/{choice}", h.clickHandler())
	})
}
