package application

import (
	"context"

	"github.com/mailpoll/mailpoll-services/api/internal/account/domain"
)

// UserRepository abstracts access to user records and their credit balance.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// DebitCredit decrements the balance by one and returns the updated
	// user. Returns domain.ErrInsufficientCredits when the balance is
	// already zero.
	DebitCredit(ctx context.Context, id string) (*domain.User, error)
}

// AccountService describes user account use-cases.
type AccountService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

func NewAccountService(repo UserRepository) AccountService {
	return &accountService{repo: repo}
}

type accountService struct {
	repo UserRepository
}

func (s *accountService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}
