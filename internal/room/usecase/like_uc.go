package usecase

import (
	"context"
	"time"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.uber.org/zap"
)

// LikeUsecase owns the like ledger: one entry per (room, user), no likes on
// your own room. The room's denormalized counter is driven through
// RoomRepository.IncrementLikeCount, never written absolutely here.
type LikeUsecase struct {
	rooms    domain.RoomRepository
	likes    domain.LikeRepository
	cache    domain.RoomCache
	events   domain.EventPublisher
	notifier domain.LikeNotifier
	logger   *zap.Logger
}

func NewLikeUsecase(
	rooms domain.RoomRepository,
	likes domain.LikeRepository,
	cache domain.RoomCache,
	events domain.EventPublisher,
	notifier domain.LikeNotifier,
	logger *zap.Logger,
) *LikeUsecase {
	return &LikeUsecase{
		rooms:    rooms,
		likes:    likes,
		cache:    cache,
		events:   events,
		notifier: notifier,
		logger:   logger,
	}
}

// Like records that caller likes the room and increments its counter.
func (uc *LikeUsecase) Like(ctx context.Context, roomID string, caller domain.Identity) (*domain.LikeResult, error) {
	room, err := uc.guardMutation(ctx, roomID, caller)
	if err != nil {
		return nil, err
	}

	like := &domain.Like{
		RoomID:    roomID,
		UserID:    caller.Key(),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.likes.Add(ctx, like); err != nil {
		return nil, err
	}

	count, err := uc.rooms.IncrementLikeCount(ctx, roomID, 1)
	if err != nil {
		// The ledger entry stays; see ReconcileUsecase for the repair path.
		uc.logger.Error("like recorded but counter increment failed",
			zap.String("room_id", roomID), zap.String("user_id", caller.Key()), zap.Error(err))
		return nil, err
	}

	uc.afterMutation(ctx, roomID)
	if err := uc.events.RoomLiked(ctx, roomID, caller.Key()); err != nil {
		uc.logger.Warn("failed to publish room.liked", zap.String("room_id", roomID), zap.Error(err))
	}
	uc.notifyOwner(room, caller)

	return &domain.LikeResult{LikeCount: domain.ClampLikeCount(count), HasLiked: true}, nil
}

// Unlike removes the caller's ledger entry and decrements the counter. The
// reported count is clamped at zero regardless of the stored value.
func (uc *LikeUsecase) Unlike(ctx context.Context, roomID string, caller domain.Identity) (*domain.LikeResult, error) {
	if _, err := uc.guardMutation(ctx, roomID, caller); err != nil {
		return nil, err
	}

	if err := uc.likes.Remove(ctx, roomID, caller.Key()); err != nil {
		return nil, err
	}

	count, err := uc.rooms.IncrementLikeCount(ctx, roomID, -1)
	if err != nil {
		uc.logger.Error("unlike recorded but counter decrement failed",
			zap.String("room_id", roomID), zap.String("user_id", caller.Key()), zap.Error(err))
		return nil, err
	}

	uc.afterMutation(ctx, roomID)
	if err := uc.events.RoomUnliked(ctx, roomID, caller.Key()); err != nil {
		uc.logger.Warn("failed to publish room.unliked", zap.String("room_id", roomID), zap.Error(err))
	}

	return &domain.LikeResult{LikeCount: domain.ClampLikeCount(count), HasLiked: false}, nil
}

// ForceLike is the separately gated override of the duplicate check. It is
// deliberately not routed over HTTP. Instead of inserting a second ledger
// entry (the unique index forbids that), it upserts: an existing entry is
// left untouched and the counter only moves when an entry was created.
func (uc *LikeUsecase) ForceLike(ctx context.Context, roomID string, caller domain.Identity) (*domain.LikeResult, error) {
	room, err := uc.guardMutation(ctx, roomID, caller)
	if err != nil {
		return nil, err
	}

	like := &domain.Like{
		RoomID:    roomID,
		UserID:    caller.Key(),
		CreatedAt: time.Now().UTC(),
	}
	created, err := uc.likes.Upsert(ctx, like)
	if err != nil {
		return nil, err
	}
	if !created {
		return &domain.LikeResult{LikeCount: room.DisplayLikeCount(), HasLiked: true}, nil
	}

	count, err := uc.rooms.IncrementLikeCount(ctx, roomID, 1)
	if err != nil {
		return nil, err
	}
	uc.afterMutation(ctx, roomID)
	return &domain.LikeResult{LikeCount: domain.ClampLikeCount(count), HasLiked: true}, nil
}

// guardMutation runs the checks shared by every mutating like operation:
// resolved identity, room exists, caller is not the owner.
func (uc *LikeUsecase) guardMutation(ctx context.Context, roomID string, caller domain.Identity) (*domain.Room, error) {
	if caller.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	room, err := uc.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.IsOwnedBy(caller) {
		uc.logger.Warn("owner attempted to like own room",
			zap.String("room_id", roomID), zap.String("user_id", caller.Key()))
		return nil, domain.ErrOwnRoom
	}
	return room, nil
}

func (uc *LikeUsecase) afterMutation(ctx context.Context, roomID string) {
	if err := uc.cache.Delete(ctx, roomID); err != nil {
		uc.logger.Warn("failed to invalidate room cache", zap.String("room_id", roomID), zap.Error(err))
	}
}

func (uc *LikeUsecase) notifyOwner(room *domain.Room, caller domain.Identity) {
	if uc.notifier == nil || room.OwnerEmail == "" {
		return
	}
	if err := uc.notifier.NotifyRoomLiked(room.OwnerEmail, room.Title, caller.Email); err != nil {
		uc.logger.Warn("failed to notify room owner about like",
			zap.String("room_id", room.ID), zap.Error(err))
	}
}
