package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mailpoll/mailpoll-services/api/internal/config"
	"github.com/mailpoll/mailpoll-services/api/internal/mailer"
	"github.com/mailpoll/mailpoll-services/api/internal/server"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	var smtpServers mailer.SMTPServerList
	if err := smtpServers.ReadFromFile(cfg.SMTPConfigPath); err != nil {
		cfg.ServerLog.Fatalf("failed to read SMTP config %s: %v", cfg.SMTPConfigPath, err)
	}
	mailClient, err := mailer.NewClient(smtpServers, cfg.PublicBaseURL, cfg.ServerLog)
	if err != nil {
		cfg.ServerLog.Fatalf("failed to set up mailer: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.ServerLog.Fatalf("failed to connect to MongoDB: %v", err)
	}

	app := server.New(cfg, client, mailClient)
	if err := app.Run(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
