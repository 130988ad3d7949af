package admin

import (
	"log"

	"github.com/go-chi/chi/v5"

	surveyapp "github.com/mailpoll/mailpoll-services/api/internal/survey/application"
)

// Handler exposes the operator-facing survey views.
type Handler struct {
	logger  *log.Logger
	queries surveyapp.SurveyQueryService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger  *log.Logger
	Queries surveyapp.SurveyQueryService
}

func NewHandler(cfg Config) *Handler {
	return &Handler{logger: cfg.Logger, queries: cfg.Queries}
}

// Register mounts the admin routes. The caller wraps them in the auth
// middleware; admin visibility is not a public surface.
func (h *Handler) Register(r chi.Router) {
	r.Get("/surveys", h.surveyListHandler())
	r.Get("/surveys/{id}/metrics", h.surveyMetricsHandler())
}
