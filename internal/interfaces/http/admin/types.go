package admin

import (
	"time"

	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

type surveyOverviewResponse struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"ownerId"`
	Title          string     `json:"title"`
	Subject        string     `json:"subject"`
	RecipientCount int        `json:"recipientCount"`
	RespondedCount int        `json:"respondedCount"`
	LastResponded  *time.Time `json:"lastResponded,omitempty"`
	DateSent       time.Time  `json:"dateSent"`
}

type surveyListResponse struct {
	Items []surveyOverviewResponse `json:"items"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
	Total int                      `json:"total"`
}

type surveyMetricsResponse struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Tally          map[string]int `json:"tally"`
	RecipientCount int            `json:"recipientCount"`
	RespondedCount int            `json:"respondedCount"`
	ResponseRate   float64        `json:"responseRate"`
	LastResponded  *time.Time     `json:"lastResponded,omitempty"`
	DateSent       time.Time      `json:"dateSent"`
}

func buildSurveyOverview(survey domain.Survey) surveyOverviewResponse {
	return surveyOverviewResponse{
		ID:             survey.ID,
		OwnerID:        survey.OwnerID,
		Title:          survey.Title,
		Subject:        survey.Subject,
		RecipientCount: len(survey.Recipients),
		RespondedCount: survey.RespondedCount(),
		LastResponded:  survey.LastResponded,
		DateSent:       survey.DateSent,
	}
}

func buildSurveyMetrics(survey domain.Survey) surveyMetricsResponse {
	tally := survey.Tally
	if tally == nil {
		tally = map[string]int{}
	}

	rate := 0.0
	if len(survey.Recipients) > 0 {
		rate = float64(survey.RespondedCount()) / float64(len(survey.Recipients))
	}

	return surveyMetricsResponse{
		ID:             survey.ID,
		Title:          survey.Title,
		Tally:          tally,
		RecipientCount: len(survey.Recipients),
		RespondedCount: survey.RespondedCount(),
		ResponseRate:   rate,
		LastResponded:  survey.LastResponded,
		DateSent:       survey.DateSent,
	}
}
