package surveys

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	accountdomain "github.com/mailpoll/mailpoll-services/api/internal/account/domain"
	"github.com/mailpoll/mailpoll-services/api/internal/interfaces/http/common"
	surveyapp "github.com/mailpoll/mailpoll-services/api/internal/survey/application"
	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

type fakeQueryService struct {
	surveys []domain.Survey
	listErr error
}

func (f *fakeQueryService) ListByOwner(context.Context, string) ([]domain.Survey, error) {
	return f.surveys, f.listErr
}
func (f *fakeQueryService) ListAll(context.Context) ([]domain.Survey, error) {
	return f.surveys, f.listErr
}
func (f *fakeQueryService) Detail(context.Context, string) (*domain.Survey, error) {
	if len(f.surveys) == 0 {
		return nil, errors.New("not found")
	}
	return &f.surveys[0], nil
}

type fakeDispatchService struct {
	user        *accountdomain.User
	err         error
	lastCommand surveyapp.CreateSurveyCommand
}

func (f *fakeDispatchService) Dispatch(_ context.Context, cmd surveyapp.CreateSurveyCommand) (*accountdomain.User, error) {
	f.lastCommand = cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeReconcileService struct {
	mu      sync.Mutex
	applied []domain.Response
	done    chan struct{}
}

func (f *fakeReconcileService) Reconcile(events []domain.InboundEvent) []domain.Response {
	return surveyapp.DedupeResponses(surveyapp.NormalizeEvents(events))
}

func (f *fakeReconcileService) Apply(_ context.Context, responses []domain.Response) {
	f.mu.Lock()
	f.applied = append(f.applied, responses...)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
}

func (f *fakeReconcileService) appliedResponses() []domain.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Response(nil), f.applied...)
}

// withTestUser emulates the server's auth middleware.
func withTestUser(id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{ID: id})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func passthrough() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func newTestRouter(t *testing.T, queries surveyapp.SurveyQueryService, dispatch surveyapp.SurveyDispatchService, reconcile surveyapp.ReconcileService) chi.Router {
	t.Helper()

	handler := NewHandler(Config{
		Logger:    log.New(&strings.Builder{}, "", 0),
		Queries:   queries,
		Dispatch:  dispatch,
		Reconcile: reconcile,
	})

	router := chi.NewRouter()
	handler.Register(router, withTestUser("owner-1"), passthrough())
	return router
}

func TestListSurveysOmitsRecipients(t *testing.T) {
	lastResponded := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	queries := &fakeQueryService{surveys: []domain.Survey{
		{
			ID:            "s1",
			OwnerID:       "owner-1",
			Title:         "Lunch",
			Subject:       "Lunch survey",
			Body:          "Happy with lunch?",
			Tally:         map[string]int{"yes": 2, "no": 1},
			LastResponded: &lastResponded,
			DateSent:      time.Date(2026, 1, 30, 9, 0, 0, 0, time.UTC),
		},
	}}
	router := newTestRouter(t, queries, &fakeDispatchService{}, &fakeReconcileService{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/surveys", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if body := recorder.Body.String(); strings.Contains(body, "recipients") {
		t.Errorf("list payload must not contain recipients: %s", body)
	}

	var payload []map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("expected 1 survey, got %d", len(payload))
	}
	if payload[0]["id"] != "s1" {
		t.Errorf("unexpected survey id: %v", payload[0]["id"])
	}
}

func TestClickThroughAcknowledgment(t *testing.T) {
	router := newTestRouter(t, &fakeQueryService{}, &fakeDispatchService{}, &fakeReconcileService{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/surveys/s1/yes", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if body := recorder.Body.String(); body != "Thanks for voting!" {
		t.Errorf("unexpected acknowledgment body: %q", body)
	}
}

func TestWebhookDispatchesDeduplicatedUpdates(t *testing.T) {
	reconcile := &fakeReconcileService{done: make(chan struct{})}
	router := newTestRouter(t, &fakeQueryService{}, &fakeDispatchService{}, reconcile)

	body := `[
		{"email": "a@x.com", "url": "https://mailpoll.test/api/surveys/s1/yes"},
		{"email": "a@x.com", "url": "https://mailpoll.test/api/surveys/s1/no"},
		{"email": "noise@x.com", "url": "https://mailpoll.test/robots.txt"}
	]`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/surveys/webhooks", strings.NewReader(body)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if strings.TrimSpace(recorder.Body.String()) != "{}" {
		t.Errorf("expected empty object body, got %q", recorder.Body.String())
	}

	select {
	case <-reconcile.done:
	case <-time.After(time.Second):
		t.Fatal("updates were never dispatched")
	}

	applied := reconcile.appliedResponses()
	if len(applied) != 1 {
		t.Fatalf("expected 1 deduplicated update, got %d", len(applied))
	}
	expected := domain.Response{Email: "a@x.com", SurveyID: "s1", Choice: "yes"}
	if applied[0] != expected {
		t.Errorf("expected %v, got %v", expected, applied[0])
	}
}

func TestWebhookAlwaysRespondsOK(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"not": "an array"`},
		{"wrong shape", `{"email": "a@x.com"}`},
		{"empty array", `[]`},
		{"irrelevant urls only", `[{"email": "a@x.com", "url": "https://elsewhere.test/x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &fakeQueryService{}, &fakeDispatchService{}, &fakeReconcileService{})

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/surveys/webhooks", strings.NewReader(tt.body)))

			if recorder.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", recorder.Code)
			}
			if strings.TrimSpace(recorder.Body.String()) != "{}" {
				t.Errorf("expected empty object body, got %q", recorder.Body.String())
			}
		})
	}
}

func TestCreateSurveySuccess(t *testing.T) {
	dispatch := &fakeDispatchService{user: &accountdomain.User{ID: "owner-1", Email: "o@x.com", Credits: 2}}
	router := newTestRouter(t, &fakeQueryService{}, dispatch, &fakeReconcileService{})

	body := `{"title": "Lunch", "subject": "Lunch survey", "body": "Happy?", "recipients": "a@x.com, b@y.com"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/surveys", strings.NewReader(body)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var payload userResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if payload.Credits != 2 {
		t.Errorf("expected updated credits 2, got %d", payload.Credits)
	}

	if dispatch.lastCommand.OwnerID != "owner-1" {
		t.Errorf("expected owner from auth context, got %q", dispatch.lastCommand.OwnerID)
	}
	if dispatch.lastCommand.Recipients != "a@x.com, b@y.com" {
		t.Errorf("raw recipient string must be forwarded, got %q", dispatch.lastCommand.Recipients)
	}
}

func TestCreateSurveyFailureReturns422(t *testing.T) {
	dispatch := &fakeDispatchService{err: errors.New("smtp unreachable")}
	router := newTestRouter(t, &fakeQueryService{}, dispatch, &fakeReconcileService{})

	body := `{"title": "Lunch", "subject": "Lunch survey", "body": "Happy?", "recipients": "a@x.com"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/surveys", strings.NewReader(body)))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "smtp unreachable") {
		t.Errorf("error detail must be surfaced: %s", recorder.Body.String())
	}
}

func TestCreateSurveyInvalidBody(t *testing.T) {
	router := newTestRouter(t, &fakeQueryService{}, &fakeDispatchService{}, &fakeReconcileService{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/surveys", strings.NewReader("{broken")))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", recorder.Code)
	}
}
