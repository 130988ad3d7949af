package surveys

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mailpoll/mailpoll-services/api/internal/interfaces/http/common"
	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

// webhookHandler receives the provider's click notification batches. The
// response is always 200 with an empty object, whatever the batch contained:
// from the provider's perspective every delivery succeeds, so it never
// retries into a growing backlog. Updates are dispatched without awaiting
// settlement; their errors are deliberately unobservable here.
func (h *Handler) webhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload []webhookEventPayload
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, common.MaxWebhookBody))
		if err := decoder.Decode(&payload); err != nil {
			common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{})
			return
		}

		events := make([]domain.InboundEvent, 0, len(payload))
		for _, record := range payload {
			events = append(events, domain.InboundEvent{Email: record.Email, URL: record.URL})
		}

		responses := h.reconcile.Reconcile(events)
		if len(responses) > 0 {
			// Fire and forget; the request context dies with this
			// handler, so the updates run on a background context.
			go h.reconcile.Apply(context.Background(), responses)
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{})
	}
}
