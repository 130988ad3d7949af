package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mailpoll/mailpoll-services/api/internal/config"
	mongodoc "github.com/mailpoll/mailpoll-services/api/internal/infrastructure/mongo"
)

// Seeds a demo user with credits and one dispatched survey so the API has
// data to serve locally.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := cfg.ServerLog

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Printf("error disconnecting MongoDB: %v", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	users := db.Collection(cfg.UserCollection)
	surveys := db.Collection(cfg.SurveyCollection)

	userID := primitive.NewObjectID()
	userEmail := fmt.Sprintf("demo-%s@mailpoll.test", uuid.NewString()[:8])
	now := time.Now().UTC()

	userDoc := mongodoc.UserDocument{
		ID:        userID,
		Email:     userEmail,
		Credits:   5,
		CreatedAt: now,
	}
	if _, err := users.InsertOne(ctx, userDoc); err != nil {
		logger.Fatalf("failed to insert demo user: %v", err)
	}

	lastResponded := now.Add(-2 * time.Hour)
	surveyDoc := mongodoc.SurveyDocument{
		ID:      primitive.NewObjectID(),
		OwnerID: userID,
		Title:   "Office lunch preferences",
		Subject: "Do you like our new lunch menu?",
		Body:    "We switched caterers last week. Happy with the change?",
		Recipients: []mongodoc.RecipientDocument{
			{Email: "alice@example.com", Responded: true},
			{Email: "bob@example.com", Responded: false},
			{Email: "carol@example.com", Responded: false},
		},
		Tally:         map[string]int{"yes": 1},
		LastResponded: &lastResponded,
		DateSent:      now.Add(-24 * time.Hour),
	}
	if _, err := surveys.InsertOne(ctx, surveyDoc); err != nil {
		logger.Fatalf("failed to insert demo survey: %v", err)
	}

	count, err := surveys.CountDocuments(ctx, bson.M{"ownerId": userID})
	if err != nil {
		logger.Fatalf("failed to count seeded surveys: %v", err)
	}

	logger.Printf("seeded user %s (%s) with %d survey(s)", userID.Hex(), userEmail, count)
}
