package surveys

import (
	"context"
	"net/http"
	"time"

	"github.com/mailpoll/mailpoll-services/api/internal/interfaces/http/common"
)

// listHandler returns the caller's surveys, recipients omitted.
func (h *Handler) listHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "authenticated user missing from context"})
			return
		}

		surveys, err := h.queries.ListByOwner(ctx, user.ID)
		if err != nil {
			h.logger.Printf("survey list fetch failed for user %s: %v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch surveys"})
			return
		}

		items := make([]surveySummaryResponse, 0, len(surveys))
		for _, survey := range surveys {
			items = append(items, buildSurveySummary(survey))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

// clickHandler is the informational click-through target of the emailed
// response links. It records nothing; the provider's click webhook is the
// source of truth for tallies.
func (h *Handler) clickHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Thanks for voting!")); err != nil && h.logger != nil {
			h.logger.Printf("click acknowledgment write failed: %v", err)
		}
	}
}
