package surveys

import (
	"time"

	accountdomain "github.com/mailpoll/mailpoll-services/api/internal/account/domain"
	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

type createSurveyRequest struct {
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Recipients string `json:"recipients"`
}

// surveySummaryResponse is the list payload. Recipients are excluded by the
// storage projection and never serialized here.
type surveySummaryResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Subject       string         `json:"subject"`
	Body          string         `json:"body"`
	Tally         map[string]int `json:"tally"`
	LastResponded *time.Time     `json:"lastResponded,omitempty"`
	DateSent      time.Time      `json:"dateSent"`
}

type userResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email,omitempty"`
	Credits int    `json:"credits"`
}

// webhookEventPayload is one record of the provider's click notification
// batch.
type webhookEventPayload struct {
	Email string `json:"email"`
	URL   string `json:"url"`
}

func buildSurveySummary(survey domain.Survey) surveySummaryResponse {
	tally := survey.Tally
	if tally == nil {
		tally = map[string]int{}
	}
	return surveySummaryResponse{
		ID:            survey.ID,
		Title:         survey.Title,
		Subject:       survey.Subject,
		Body:          survey.Body,
		Tally:         tally,
		LastResponded: survey.LastResponded,
		DateSent:      survey.DateSent,
	}
}

func buildUserResponse(user *accountdomain.User) userResponse {
	return userResponse{
		ID:      user.ID,
		Email:   user.Email,
		Credits: user.Credits,
	}
}
