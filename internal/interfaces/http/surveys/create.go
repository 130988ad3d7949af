package surveys

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mailpoll/mailpoll-services/api/internal/interfaces/http/common"
	surveyapp "github.com/mailpoll/mailpoll-services/api/internal/survey/application"
)

// createHandler runs the dispatch path: compose, send, persist, debit.
// Any failure along the way surfaces as 422 with the error detail; nothing
// is persisted and no credit is debited unless the send succeeded first.
func (h *Handler) createHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "authenticated user missing from context"})
			return
		}

		var req createSurveyRequest
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, common.MaxRequestBody))
		if err := decoder.Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid request body"})
			return
		}

		updated, err := h.dispatch.Dispatch(ctx, surveyapp.CreateSurveyCommand{
			OwnerID:    user.ID,
			Title:      req.Title,
			Subject:    req.Subject,
			Body:       req.Body,
			Recipients: req.Recipients,
		})
		if err != nil {
			h.logger.Printf("survey dispatch failed for user %s: %v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildUserResponse(updated))
	}
}
