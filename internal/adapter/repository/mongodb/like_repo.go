package mongodb

import (
	"context"
	"fmt"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const likesCollectionName = "likes"

// LikeRepository stores the like ledger. The unique index on
// (room_id, user_id) is what turns the duplicate check into an atomic
// insert: a concurrent second like fails with a duplicate key error instead
// of slipping past a read-then-write.
type LikeRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewLikeRepository(db *mongo.Database, logger *zap.Logger) *LikeRepository {
	return &LikeRepository{
		collection: db.Collection(likesCollectionName),
		logger:     logger,
	}
}

// EnsureIndexes creates the unique compound index the ledger relies on.
// Called once at startup.
func (r *LikeRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: "room_id", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_room_user"),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create likes unique index: %w", err)
	}
	return nil
}

func (r *LikeRepository) Add(ctx context.Context, like *domain.Like) error {
	doc := likeDocument{
		RoomID:    like.RoomID,
		UserID:    like.UserID,
		CreatedAt: like.CreatedAt,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyLiked
		}
		r.logger.Error("LikeRepository.Add: InsertOne failed",
			zap.String("room_id", like.RoomID), zap.String("user_id", like.UserID), zap.Error(err))
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		like.ID = oid.Hex()
	}
	return nil
}

// Upsert inserts the entry only when absent and reports whether it was
// created. This backs the gated force-like path, which must not conflict.
func (r *LikeRepository) Upsert(ctx context.Context, like *domain.Like) (bool, error) {
	filter := bson.M{"room_id": like.RoomID, "user_id": like.UserID}
	doc := likeDocument{
		RoomID:    like.RoomID,
		UserID:    like.UserID,
		CreatedAt: like.CreatedAt,
	}

	opts := options.Update().SetUpsert(true)
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$setOnInsert": doc}, opts)
	if err != nil {
		r.logger.Error("LikeRepository.Upsert: UpdateOne failed",
			zap.String("room_id", like.RoomID), zap.String("user_id", like.UserID), zap.Error(err))
		return false, err
	}
	if res.UpsertedID != nil {
		if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
			like.ID = oid.Hex()
		}
		return true, nil
	}
	return false, nil
}

func (r *LikeRepository) Remove(ctx context.Context, roomID, userID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"room_id": roomID, "user_id": userID})
	if err != nil {
		r.logger.Error("LikeRepository.Remove: DeleteOne failed",
			zap.String("room_id", roomID), zap.String("user_id", userID), zap.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotLiked
	}
	return nil
}

func (r *LikeRepository) Exists(ctx context.Context, roomID, userID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"room_id": roomID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return count > 0, nil
}

func (r *LikeRepository) FindByRoomID(ctx context.Context, roomID string) ([]*domain.Like, error) {
	return r.find(ctx, bson.M{"room_id": roomID})
}

func (r *LikeRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Like, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *LikeRepository) find(ctx context.Context, filter bson.M) ([]*domain.Like, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		r.logger.Error("LikeRepository.find: Find failed", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*likeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return toDomainLikes(docs), nil
}

func (r *LikeRepository) CountByRoomID(ctx context.Context, roomID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"room_id": roomID})
	if err != nil {
		return 0, fmt.Errorf("failed to count likes for room %s: %w", roomID, err)
	}
	return count, nil
}

func (r *LikeRepository) DeleteByRoomID(ctx context.Context, roomID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"room_id": roomID})
	if err != nil {
		r.logger.Error("LikeRepository.DeleteByRoomID: DeleteMany failed", zap.String("room_id", roomID), zap.Error(err))
		return 0, err
	}
	return res.DeletedCount, nil
}
