package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	accountdomain "github.com/mailpoll/mailpoll-services/api/internal/account/domain"
)

// UserRepository persists survey owners and their credit balances.
type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{users: db.Collection(collectionName)}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*accountdomain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	var doc UserDocument
	if err := r.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, err
	}

	user := mapUserDocument(doc)
	return &user, nil
}

// DebitCredit atomically decrements the balance by one, guarded by a
// credits >= 1 filter so a concurrent dispatch cannot drive it negative.
func (r *UserRepository) DebitCredit(ctx context.Context, id string) (*accountdomain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": objectID, "credits": bson.M{"$gte": 1}}
	update := bson.M{"$inc": bson.M{"credits": -1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc UserDocument
	err = r.users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, accountdomain.ErrInsufficientCredits
	}
	if err != nil {
		return nil, err
	}

	user := mapUserDocument(doc)
	return &user, nil
}
