package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

func TestResponseFilter(t *testing.T) {
	surveyID := primitive.NewObjectID()

	filter := responseFilter(surveyID, "a@x.com")

	expected := bson.M{
		"_id": surveyID,
		"recipients": bson.M{
			"$elemMatch": bson.M{"email": "a@x.com", "responded": false},
		},
	}
	if !reflect.DeepEqual(filter, expected) {
		t.Errorf("expected filter %v, got %v", expected, filter)
	}
}

func TestResponseUpdate(t *testing.T) {
	respondedAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	update := responseUpdate("yes", respondedAt)

	expected := bson.M{
		"$inc": bson.M{"tally.yes": 1},
		"$set": bson.M{
			"recipients.$.responded": true,
			"lastResponded":          respondedAt,
		},
	}
	if !reflect.DeepEqual(update, expected) {
		t.Errorf("expected update %v, got %v", expected, update)
	}
}

func TestTallyKey(t *testing.T) {
	tests := []struct {
		choice   string
		expected string
	}{
		{"yes", "tally.yes"},
		{"no", "tally.no"},
		{"maybe-later", "tally.maybe-later"},
	}

	for _, tt := range tests {
		if got := tallyKey(tt.choice); got != tt.expected {
			t.Errorf("tallyKey(%q): expected %q, got %q", tt.choice, tt.expected, got)
		}
	}
}

func TestMapSurveyDocument(t *testing.T) {
	id := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()
	lastResponded := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	doc := SurveyDocument{
		ID:      id,
		OwnerID: ownerID,
		Title:   "Lunch",
		Subject: "Lunch survey",
		Body:    "Happy?",
		Recipients: []RecipientDocument{
			{Email: "a@x.com", Responded: true},
			{Email: "b@y.com"},
		},
		Tally:         map[string]int{"yes": 1},
		LastResponded: &lastResponded,
		DateSent:      time.Date(2026, 1, 30, 9, 0, 0, 0, time.UTC),
	}

	survey := mapSurveyDocument(doc)

	if survey.ID != id.Hex() || survey.OwnerID != ownerID.Hex() {
		t.Errorf("identifier mapping broken: %q / %q", survey.ID, survey.OwnerID)
	}
	if len(survey.Recipients) != 2 || !survey.Recipients[0].Responded || survey.Recipients[1].Responded {
		t.Errorf("recipient mapping broken: %v", survey.Recipients)
	}
	if survey.Tally["yes"] != 1 {
		t.Errorf("tally mapping broken: %v", survey.Tally)
	}
	if survey.LastResponded == nil || !survey.LastResponded.Equal(lastResponded) {
		t.Errorf("lastResponded mapping broken: %v", survey.LastResponded)
	}
}

func TestMapSurveyDocumentWithoutRecipients(t *testing.T) {
	// The owner list projection excludes recipients entirely.
	doc := SurveyDocument{
		ID:      primitive.NewObjectID(),
		OwnerID: primitive.NewObjectID(),
		Title:   "Lunch",
	}

	survey := mapSurveyDocument(doc)

	if len(survey.Recipients) != 0 {
		t.Errorf("expected no recipients, got %v", survey.Recipients)
	}
	if survey.LastResponded != nil {
		t.Errorf("expected unset lastResponded, got %v", survey.LastResponded)
	}
}

func TestMapRecipientDocuments(t *testing.T) {
	recipients := []domain.Recipient{
		{Email: "a@x.com"},
		{Email: "b@y.com", Responded: true},
	}

	docs := mapRecipientDocuments(recipients)

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Email != "a@x.com" || docs[0].Responded {
		t.Errorf("unexpected first document: %v", docs[0])
	}
	if docs[1].Email != "b@y.com" || !docs[1].Responded {
		t.Errorf("unexpected second document: %v", docs[1])
	}
}
