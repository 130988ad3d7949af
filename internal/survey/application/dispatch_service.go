package application

import (
	"context"
	"errors"
	"strings"
	"time"

	accountdomain "github.com/mailpoll/mailpoll-services/api/internal/account/domain"
	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

// CreateSurveyCommand captures the authenticated owner's creation input.
// Recipients is the raw comma-separated address list as submitted.
type CreateSurveyCommand struct {
	OwnerID    string
	Title      string
	Subject    string
	Body       string
	Recipients string
}

func (cmd *CreateSurveyCommand) validate() error {
	if strings.TrimSpace(cmd.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(cmd.Subject) == "" {
		return errors.New("subject is required")
	}
	if strings.TrimSpace(cmd.Body) == "" {
		return errors.New("body is required")
	}
	if len(domain.ParseRecipients(cmd.Recipients)) == 0 {
		return errors.New("at least one recipient is required")
	}
	return nil
}

// SurveyDispatchService handles the creation path: compose, send, persist,
// debit. Persistence happens only after send succeeds, so a failure leaves
// no survey record and no debit. The reverse window (sent but not persisted)
// is accepted.
type SurveyDispatchService interface {
	Dispatch(ctx context.Context, cmd CreateSurveyCommand) (*accountdomain.User, error)
}

func NewSurveyDispatchService(surveys SurveyRepository, users UserRepository, mailer Mailer) SurveyDispatchService {
	return &surveyDispatchService{surveys: surveys, users: users, mailer: mailer}
}

type surveyDispatchService struct {
	surveys SurveyRepository
	users   UserRepository
	mailer  Mailer
}

func (s *surveyDispatchService) Dispatch(ctx context.Context, cmd CreateSurveyCommand) (*accountdomain.User, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	recipients := domain.ParseRecipients(cmd.Recipients)
	survey := domain.NewSurvey(cmd.OwnerID, cmd.Title, cmd.Subject, cmd.Body, recipients, time.Now().UTC())
	survey.ID = s.surveys.NextID()

	if err := s.mailer.SendSurvey(ctx, survey); err != nil {
		return nil, err
	}
	if err := s.surveys.Insert(ctx, survey); err != nil {
		return nil, err
	}
	return s.users.DebitCredit(ctx, cmd.OwnerID)
}
