package domain

import (
	"strings"
	"time"
)

// DefaultChoices are the response options offered by the standard survey
// email template. The tally itself is keyed dynamically, so responses for
// labels outside this set are still counted.
var DefaultChoices = []string{"yes", "no"}

// Recipient is one survey target embedded in the survey document.
// Responded flips false -> true exactly once; once true, no further tally
// update may be applied for that recipient.
type Recipient struct {
	Email     string
	Responded bool
}

// Survey is an owner-scoped questionnaire dispatched by email.
type Survey struct {
	ID            string
	OwnerID       string
	Title         string
	Subject       string
	Body          string
	Recipients    []Recipient
	Tally         map[string]int
	LastResponded *time.Time
	DateSent      time.Time
}

// NewSurvey builds a survey ready for dispatch. Tally starts empty; counters
// are created on first increment by the storage layer.
func NewSurvey(ownerID, title, subject, body string, recipients []Recipient, sentAt time.Time) *Survey {
	return &Survey{
		OwnerID:    ownerID,
		Title:      title,
		Subject:    subject,
		Body:       body,
		Recipients: append([]Recipient{}, recipients...),
		Tally:      map[string]int{},
		DateSent:   sentAt,
	}
}

// ParseRecipients splits a comma-separated address list into recipients.
// Tokens are trimmed, empty tokens are dropped, duplicates are preserved in
// their original order.
func ParseRecipients(raw string) []Recipient {
	parts := strings.Split(raw, ",")
	recipients := make([]Recipient, 0, len(parts))
	for _, part := range parts {
		email := strings.TrimSpace(part)
		if email == "" {
			continue
		}
		recipients = append(recipients, Recipient{Email: email})
	}
	return recipients
}

// RecipientEmails returns the send order address list.
func (s *Survey) RecipientEmails() []string {
	emails := make([]string, 0, len(s.Recipients))
	for _, r := range s.Recipients {
		emails = append(emails, r.Email)
	}
	return emails
}

// RespondedCount reports how many recipients have already answered.
func (s *Survey) RespondedCount() int {
	count := 0
	for _, r := range s.Recipients {
		if r.Responded {
			count++
		}
	}
	return count
}
