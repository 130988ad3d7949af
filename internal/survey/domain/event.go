package domain

// InboundEvent is one raw record from the mail provider's webhook payload.
// Events are transient: constructed per delivery, discarded after one
// reconciliation pass, never stored.
type InboundEvent struct {
	Email string
	URL   string
}

// Response is a normalized candidate extracted from an inbound event: one
// recipient's choice for one survey.
type Response struct {
	Email    string
	SurveyID string
	Choice   string
}
