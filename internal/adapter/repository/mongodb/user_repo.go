package mongodb

import (
	"context"
	"errors"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const usersCollectionName = "users"

// UserRepository is a read-only view of the user directory, used to attach
// profiles to liked-by results. A missing user is not an error.
type UserRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewUserRepository(db *mongo.Database, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		collection: db.Collection(usersCollectionName),
		logger:     logger,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("UserRepository.FindByEmail: FindOne failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return toDomainProfile(&doc), nil
}
