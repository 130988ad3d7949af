package application

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

// ResponseRoute is the path template a provider click notification must
// match to be treated as a survey response.
const ResponseRoute = "/api/surveys/:surveyId/:choice"

// MatchPath tests a concrete path against a template whose segments may be
// named parameters (":name"). Matching is purely structural: segment counts
// and static literals must align. Identifier formats are not validated here;
// an invalid identifier simply finds no document later.
func MatchPath(template, path string) (map[string]string, bool) {
	templateSegments := splitPath(template)
	pathSegments := splitPath(path)
	if len(templateSegments) != len(pathSegments) {
		return nil, false
	}

	params := make(map[string]string, len(templateSegments))
	for i, segment := range templateSegments {
		if name, ok := strings.CutPrefix(segment, ":"); ok {
			params[name] = pathSegments[i]
			continue
		}
		if segment != pathSegments[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// NormalizeEvents maps raw webhook records to candidate responses. Records
// with an unparseable URL or a path that does not match the response route
// are dropped; provider noise must never abort the batch. Output order
// follows input order minus dropped entries.
func NormalizeEvents(events []domain.InboundEvent) []domain.Response {
	candidates := make([]domain.Response, 0, len(events))
	for _, event := range events {
		parsed, err := url.Parse(event.URL)
		if err != nil {
			continue
		}
		params, ok := MatchPath(ResponseRoute, parsed.Path)
		if !ok {
			continue
		}
		candidates = append(candidates, domain.Response{
			Email:    event.Email,
			SurveyID: params["surveyId"],
			Choice:   params["choice"],
		})
	}
	return candidates
}

// DedupeResponses collapses candidates sharing the same (email, surveyId)
// pair. Choice is deliberately not part of the key: only one choice per
// recipient per survey is ever honored, and the first occurrence wins.
func DedupeResponses(candidates []domain.Response) []domain.Response {
	type dedupKey struct {
		email    string
		surveyID string
	}

	seen := make(map[dedupKey]struct{}, len(candidates))
	unique := make([]domain.Response, 0, len(candidates))
	for _, candidate := range candidates {
		key := dedupKey{email: candidate.Email, surveyID: candidate.SurveyID}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, candidate)
	}
	return unique
}

// ReconcileService turns a webhook batch into deduplicated tally updates.
type ReconcileService interface {
	// Reconcile normalizes and deduplicates a batch. Pure; no storage calls.
	Reconcile(events []domain.InboundEvent) []domain.Response
	// Apply issues one conditional update per response. Failed or stale
	// updates are silent no-ops; callers dispatch this without awaiting it.
	Apply(ctx context.Context, responses []domain.Response)
}

func NewReconcileService(applier TallyApplier, logger *log.Logger) ReconcileService {
	return &reconcileService{applier: applier, logger: logger}
}

type reconcileService struct {
	applier TallyApplier
	logger  *log.Logger
}

func (s *reconcileService) Reconcile(events []domain.InboundEvent) []domain.Response {
	return DedupeResponses(NormalizeEvents(events))
}

func (s *reconcileService) Apply(ctx context.Context, responses []domain.Response) {
	for _, response := range responses {
		// Best-effort at-least-once contract: the provider retries
		// delivery, the conditional filter makes repeats no-ops.
		_ = s.applier.RecordResponse(ctx, response)
	}
	if s.logger != nil && len(responses) > 0 {
		s.logger.Printf("dispatched %d tally update(s)", len(responses))
	}
}
