package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

// SurveyRepository persists survey aggregates in a single collection.
type SurveyRepository struct {
	surveys *mongo.Collection
}

func NewSurveyRepository(db *mongo.Database, collectionName string) *SurveyRepository {
	return &SurveyRepository{surveys: db.Collection(collectionName)}
}

// NextID generates a client-side ObjectID so the identifier is known before
// the outbound email is rendered.
func (r *SurveyRepository) NextID() string {
	return primitive.NewObjectID().Hex()
}

// Insert persists a new survey document.
func (r *SurveyRepository) Insert(ctx context.Context, survey *domain.Survey) error {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(survey.ID))
	if err != nil {
		id = primitive.NewObjectID()
		survey.ID = id.Hex()
	}
	ownerID, err := primitive.ObjectIDFromHex(strings.TrimSpace(survey.OwnerID))
	if err != nil {
		return err
	}

	doc := SurveyDocument{
		ID:         id,
		OwnerID:    ownerID,
		Title:      survey.Title,
		Subject:    survey.Subject,
		Body:       survey.Body,
		Recipients: mapRecipientDocuments(survey.Recipients),
		Tally:      survey.Tally,
		DateSent:   survey.DateSent,
	}

	_, err = r.surveys.InsertOne(ctx, doc)
	return err
}

// FindByOwner returns the owner's surveys newest first. The recipients field
// is excluded by projection; the address list never leaves storage on the
// list path.
func (r *SurveyRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Survey, error) {
	owner, err := primitive.ObjectIDFromHex(strings.TrimSpace(ownerID))
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetProjection(bson.M{"recipients": 0}).
		SetSort(bson.D{{Key: "dateSent", Value: -1}})

	cursor, err := r.surveys.Find(ctx, bson.M{"ownerId": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeSurveys(ctx, cursor)
}

// FindAll returns every survey, newest first.
func (r *SurveyRepository) FindAll(ctx context.Context) ([]domain.Survey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateSent", Value: -1}})
	cursor, err := r.surveys.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeSurveys(ctx, cursor)
}

// FindByID returns one survey with its full recipient list.
func (r *SurveyRepository) FindByID(ctx context.Context, id string) (*domain.Survey, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	var doc SurveyDocument
	if err := r.surveys.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, err
	}

	survey := mapSurveyDocument(doc)
	return &survey, nil
}

// RecordResponse applies one response as a single conditional update. The
// filter requires the survey to exist with a recipient entry matching the
// email whose responded flag is still false; when it matches, one atomic
// operation increments the choice counter (created at 1 if absent), flips
// that recipient's flag, and stamps lastResponded, so duplicate deliveries
// racing across webhook calls serialize on storage.
// A non-matching filter, including an unparseable survey identifier, is a
// silent no-op.
func (r *SurveyRepository) RecordResponse(ctx context.Context, response domain.Response) error {
	surveyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(response.SurveyID))
	if err != nil {
		return nil
	}

	filter := responseFilter(surveyID, response.Email)
	update := responseUpdate(response.Choice, time.Now().UTC())
	_, err = r.surveys.UpdateOne(ctx, filter, update)
	return err
}

func responseFilter(surveyID primitive.ObjectID, email string) bson.M {
	return bson.M{
		"_id": surveyID,
		"recipients": bson.M{
			"$elemMatch": bson.M{"email": email, "responded": false},
		},
	}
}

func responseUpdate(choice string, respondedAt time.Time) bson.M {
	return bson.M{
		"$inc": bson.M{tallyKey(choice): 1},
		"$set": bson.M{
			"recipients.$.responded": true,
			"lastResponded":          respondedAt,
		},
	}
}

func tallyKey(choice string) string {
	return "tally." + choice
}

func decodeSurveys(ctx context.Context, cursor *mongo.Cursor) ([]domain.Survey, error) {
	surveys := make([]domain.Survey, 0)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		surveys = append(surveys, mapSurveyDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return surveys, nil
}
