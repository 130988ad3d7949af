package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	accountdomain "github.com/mailpoll/mailpoll-services/api/internal/account/domain"
	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

// RecipientDocument is the embedded per-target element of a survey document.
type RecipientDocument struct {
	Email     string `bson:"email"`
	Responded bool   `bson:"responded"`
}

// SurveyDocument is the MongoDB schema for a dispatched survey. Tally is a
// dynamically keyed counter map; $inc creates missing keys at 1.
type SurveyDocument struct {
	ID            primitive.ObjectID  `bson:"_id"`
	OwnerID       primitive.ObjectID  `bson:"ownerId"`
	Title         string              `bson:"title"`
	Subject       string              `bson:"subject"`
	Body          string              `bson:"body"`
	Recipients    []RecipientDocument `bson:"recipients,omitempty"`
	Tally         map[string]int      `bson:"tally,omitempty"`
	LastResponded *time.Time          `bson:"lastResponded,omitempty"`
	DateSent      time.Time           `bson:"dateSent"`
}

// UserDocument is the MongoDB schema for a survey owner.
type UserDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Email     string             `bson:"email"`
	Credits   int                `bson:"credits"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func mapSurveyDocument(doc SurveyDocument) domain.Survey {
	recipients := make([]domain.Recipient, 0, len(doc.Recipients))
	for _, r := range doc.Recipients {
		recipients = append(recipients, domain.Recipient{Email: r.Email, Responded: r.Responded})
	}

	tally := make(map[string]int, len(doc.Tally))
	for choice, count := range doc.Tally {
		tally[choice] = count
	}

	return domain.Survey{
		ID:            doc.ID.Hex(),
		OwnerID:       doc.OwnerID.Hex(),
		Title:         doc.Title,
		Subject:       doc.Subject,
		Body:          doc.Body,
		Recipients:    recipients,
		Tally:         tally,
		LastResponded: doc.LastResponded,
		DateSent:      doc.DateSent,
	}
}

func mapRecipientDocuments(recipients []domain.Recipient) []RecipientDocument {
	docs := make([]RecipientDocument, 0, len(recipients))
	for _, r := range recipients {
		docs = append(docs, RecipientDocument{Email: r.Email, Responded: r.Responded})
	}
	return docs
}

func mapUserDocument(doc UserDocument) accountdomain.User {
	return accountdomain.User{
		ID:        doc.ID.Hex(),
		Email:     doc.Email,
		Credits:   doc.Credits,
		CreatedAt: doc.CreatedAt,
	}
}
