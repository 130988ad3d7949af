package application

import (
	"context"

	accountdomain "github.com/mailpoll/mailpoll-services/api/internal/account/domain"
	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

// SurveyRepository is the storage port for survey aggregates.
type SurveyRepository interface {
	// NextID generates a new survey identifier. IDs are assigned before
	// dispatch so the outbound email can carry response links.
	NextID() string
	Insert(ctx context.Context, survey *domain.Survey) error
	// FindByOwner returns the owner's surveys with the recipients field
	// excluded from the result.
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Survey, error)
	FindAll(ctx context.Context) ([]domain.Survey, error)
	FindByID(ctx context.Context, id string) (*domain.Survey, error)
	RecordResponse(ctx context.Context, response domain.Response) error
}

// UserRepository gives the dispatcher access to the requesting user's
// credit balance.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*accountdomain.User, error)
	DebitCredit(ctx context.Context, id string) (*accountdomain.User, error)
}

// Mailer delivers the composed survey email to all recipients.
type Mailer interface {
	SendSurvey(ctx context.Context, survey *domain.Survey) error
}

// TallyApplier issues one conditional tally update per deduplicated response.
type TallyApplier interface {
	RecordResponse(ctx context.Context, response domain.Response) error
}

// SurveyQueryService describes survey read use-cases.
type SurveyQueryService interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Survey, error)
	ListAll(ctx context.Context) ([]domain.Survey, error)
	Detail(ctx context.Context, id string) (*domain.Survey, error)
}

func NewSurveyQueryService(repo SurveyRepository) SurveyQueryService {
	return &surveyQueryService{repo: repo}
}

type surveyQueryService struct {
	repo SurveyRepository
}

func (s *surveyQueryService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Survey, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

func (s *surveyQueryService) ListAll(ctx context.Context) ([]domain.Survey, error) {
	return s.repo.FindAll(ctx)
}

func (s *surveyQueryService) Detail(ctx context.Context, id string) (*domain.Survey, error) {
	return s.repo.FindByID(ctx, id)
}
