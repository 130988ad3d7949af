package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mailpoll/mailpoll-services/api/internal/interfaces/http/common"
)

// surveyListHandler returns every survey across owners, paginated.
func (h *Handler) surveyListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 20)

		surveys, err := h.queries.ListAll(ctx)
		if err != nil {
			h.logger.Printf("admin survey list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch surveys"})
			return
		}

		total := len(surveys)
		start := (page - 1) * limit
		if start >= total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}

		items := make([]surveyOverviewResponse, 0, end-start)
		for _, survey := range surveys[start:end] {
			items = append(items, buildSurveyOverview(survey))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, surveyListResponse{
			Items: items,
			Page:  page,
			Limit: limit,
			Total: total,
		})
	}
}

// surveyMetricsHandler reports per-choice tallies and response progress for
// a single survey.
func (h *Handler) surveyMetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := chi.URLParam(r, "id")
		survey, err := h.queries.Detail(ctx, id)
		if errors.Is(err, mongo.ErrNoDocuments) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "survey not found"})
			return
		}
		if err != nil {
			h.logger.Printf("admin survey metrics fetch failed for %s: %v", id, err)
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "failed to fetch survey"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildSurveyMetrics(*survey))
	}
}
