package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const roomsCollectionName = "rooms"

type RoomRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewRoomRepository(db *mongo.Database, logger *zap.Logger) *RoomRepository {
	return &RoomRepository{
		collection: db.Collection(roomsCollectionName),
		logger:     logger,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	doc, err := toRoomDocument(room)
	if err != nil {
		return fmt.Errorf("failed to prepare room for database: %w", err)
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("RoomRepository.Create: InsertOne failed", zap.Error(err))
		return err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	room.ID = oid.Hex()
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	oid, err := primitive.ObjectIDFromHex(room.ID)
	if err != nil {
		return domain.ErrRoomNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       room.Title,
		"location":    room.Location,
		"rent_amount": room.RentAmount,
		"available":   room.Available,
		"updated_at":  room.UpdatedAt,
	}}
	res, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		r.logger.Error("RoomRepository.Update: UpdateByID failed", zap.String("room_id", room.ID), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoomNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("RoomRepository.Delete: DeleteOne failed", zap.String("room_id", id), zap.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	var doc roomDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoomNotFound
		}
		r.logger.Error("RoomRepository.FindByID: FindOne failed", zap.String("room_id", id), zap.Error(err))
		return nil, err
	}
	return toDomainRoom(&doc), nil
}

func (r *RoomRepository) FindAll(ctx context.Context) ([]*domain.Room, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("RoomRepository.FindAll: Find failed", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*roomDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return toDomainRooms(docs), nil
}

// IncrementLikeCount applies delta to like_count in one atomic server-side
// update and returns the counter as stored afterwards. A room deleted
// between the caller's checks and this update surfaces as ErrRoomNotFound.
func (r *RoomRepository) IncrementLikeCount(ctx context.Context, id string, delta int64) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrRoomNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$inc": bson.M{"like_count": delta}}

	var doc roomDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrRoomNotFound
		}
		r.logger.Error("RoomRepository.IncrementLikeCount: FindOneAndUpdate failed",
			zap.String("room_id", id), zap.Int64("delta", delta), zap.Error(err))
		return 0, err
	}
	return doc.LikeCount, nil
}

func (r *RoomRepository) SetLikeCount(ctx context.Context, id string, count int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoomNotFound
	}
	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"like_count": count}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) AppendPhotoURL(ctx context.Context, id string, url string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoomNotFound
	}
	update := bson.M{
		"$push": bson.M{"photo_urls": url},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		r.logger.Error("RoomRepository.AppendPhotoURL: UpdateByID failed", zap.String("room_id", id), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
