package usecase

import (
	"context"
	"time"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.uber.org/zap"
)

// RoomUsecase covers the room lifecycle. Deleting a room cascades into the
// like ledger so no entry can outlive its room.
type RoomUsecase struct {
	rooms  domain.RoomRepository
	likes  domain.LikeRepository
	cache  domain.RoomCache
	events domain.EventPublisher
	photos domain.PhotoStorage
	logger *zap.Logger
}

func NewRoomUsecase(
	rooms domain.RoomRepository,
	likes domain.LikeRepository,
	cache domain.RoomCache,
	events domain.EventPublisher,
	photos domain.PhotoStorage,
	logger *zap.Logger,
) *RoomUsecase {
	return &RoomUsecase{
		rooms:  rooms,
		likes:  likes,
		cache:  cache,
		events: events,
		photos: photos,
		logger: logger,
	}
}

type CreateRoomInput struct {
	Title      string
	Location   string
	RentAmount float64
	Available  bool
}

func (uc *RoomUsecase) CreateRoom(ctx context.Context, caller domain.Identity, in CreateRoomInput) (*domain.Room, error) {
	if caller.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	if in.Title == "" || in.Location == "" || in.RentAmount <= 0 {
		return nil, domain.ErrInvalidRoomData
	}

	now := time.Now().UTC()
	room := &domain.Room{
		Title:      in.Title,
		Location:   in.Location,
		RentAmount: in.RentAmount,
		OwnerID:    caller.ID,
		OwnerEmail: caller.Email,
		Available:  in.Available,
		LikeCount:  0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.rooms.Create(ctx, room); err != nil {
		uc.logger.Error("failed to create room", zap.String("owner", caller.Key()), zap.Error(err))
		return nil, err
	}

	if err := uc.events.RoomCreated(ctx, room); err != nil {
		uc.logger.Warn("failed to publish room.created", zap.String("room_id", room.ID), zap.Error(err))
	}
	return room, nil
}

func (uc *RoomUsecase) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	if cached, err := uc.cache.Get(ctx, id); err != nil {
		uc.logger.Warn("room cache read failed", zap.String("room_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	room, err := uc.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, room); err != nil {
		uc.logger.Warn("room cache write failed", zap.String("room_id", id), zap.Error(err))
	}
	return room, nil
}

func (uc *RoomUsecase) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	return uc.rooms.FindAll(ctx)
}

type UpdateRoomInput struct {
	Title      string
	Location   string
	RentAmount float64
	Available  *bool
}

func (uc *RoomUsecase) UpdateRoom(ctx context.Context, id string, caller domain.Identity, in UpdateRoomInput) (*domain.Room, error) {
	if caller.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	room, err := uc.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !room.IsOwnedBy(caller) {
		return nil, domain.ErrForbidden
	}

	if in.Title != "" {
		room.Title = in.Title
	}
	if in.Location != "" {
		room.Location = in.Location
	}
	if in.RentAmount > 0 {
		room.RentAmount = in.RentAmount
	}
	if in.Available != nil {
		room.Available = *in.Available
	}
	room.UpdatedAt = time.Now().UTC()

	if err := uc.rooms.Update(ctx, room); err != nil {
		uc.logger.Error("failed to update room", zap.String("room_id", id), zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, id)
	if err := uc.events.RoomUpdated(ctx, room); err != nil {
		uc.logger.Warn("failed to publish room.updated", zap.String("room_id", id), zap.Error(err))
	}
	return room, nil
}

// DeleteRoom removes the room and every ledger entry referencing it.
// Ordering relative to the room delete does not matter; nothing reconciles
// counters for a room that is gone.
func (uc *RoomUsecase) DeleteRoom(ctx context.Context, id string, caller domain.Identity) error {
	if caller.IsAnonymous() {
		return domain.ErrUnauthenticated
	}
	room, err := uc.rooms.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !room.IsOwnedBy(caller) {
		return domain.ErrForbidden
	}

	removed, err := uc.likes.DeleteByRoomID(ctx, id)
	if err != nil {
		uc.logger.Error("failed to cascade-delete likes", zap.String("room_id", id), zap.Error(err))
		return err
	}
	if err := uc.rooms.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete room", zap.String("room_id", id), zap.Error(err))
		return err
	}

	uc.invalidate(ctx, id)
	uc.logger.Info("room deleted", zap.String("room_id", id), zap.Int64("likes_removed", removed))
	if err := uc.events.RoomDeleted(ctx, id); err != nil {
		uc.logger.Warn("failed to publish room.deleted", zap.String("room_id", id), zap.Error(err))
	}
	return nil
}

func (uc *RoomUsecase) UploadPhoto(ctx context.Context, id string, caller domain.Identity, fileName string, data []byte) (string, error) {
	if caller.IsAnonymous() {
		return "", domain.ErrUnauthenticated
	}
	room, err := uc.rooms.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !room.IsOwnedBy(caller) {
		return "", domain.ErrForbidden
	}

	url, err := uc.photos.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("photo upload failed", zap.String("room_id", id), zap.Error(err))
		return "", err
	}
	if err := uc.rooms.AppendPhotoURL(ctx, id, url); err != nil {
		return "", err
	}
	uc.invalidate(ctx, id)
	return url, nil
}

func (uc *RoomUsecase) invalidate(ctx context.Context, id string) {
	if err := uc.cache.Delete(ctx, id); err != nil {
		uc.logger.Warn("failed to invalidate room cache", zap.String("room_id", id), zap.Error(err))
	}
}
