package domain

import (
	"errors"
	"time"
)

// ErrInsufficientCredits is returned when a debit would take the balance
// below zero.
var ErrInsufficientCredits = errors.New("not enough credits")

// User owns surveys and pays one credit per dispatched survey.
type User struct {
	ID        string
	Email     string
	Credits   int
	CreatedAt time.Time
}
