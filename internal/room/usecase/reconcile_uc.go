package usecase

import (
	"context"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.uber.org/zap"
)

// ReconcileUsecase is the repair path for counters that drifted from the
// ledger, e.g. when an increment failed after the ledger write. It is run
// from main on startup when RECONCILE_ON_START is set, or from operator
// tooling.
type ReconcileUsecase struct {
	rooms  domain.RoomRepository
	likes  domain.LikeRepository
	cache  domain.RoomCache
	logger *zap.Logger
}

func NewReconcileUsecase(rooms domain.RoomRepository, likes domain.LikeRepository, cache domain.RoomCache, logger *zap.Logger) *ReconcileUsecase {
	return &ReconcileUsecase{rooms: rooms, likes: likes, cache: cache, logger: logger}
}

// ReconcileLikeCounts recomputes every room's counter from the ledger and
// rewrites the ones that drifted. Returns the number of rooms corrected.
func (uc *ReconcileUsecase) ReconcileLikeCounts(ctx context.Context) (int, error) {
	rooms, err := uc.rooms.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, room := range rooms {
		actual, err := uc.likes.CountByRoomID(ctx, room.ID)
		if err != nil {
			uc.logger.Error("reconcile: failed to count likes", zap.String("room_id", room.ID), zap.Error(err))
			return corrected, err
		}
		if actual == room.LikeCount {
			continue
		}
		uc.logger.Info("reconcile: correcting drifted like counter",
			zap.String("room_id", room.ID),
			zap.Int64("stored", room.LikeCount),
			zap.Int64("actual", actual))
		if err := uc.rooms.SetLikeCount(ctx, room.ID, actual); err != nil {
			return corrected, err
		}
		if err := uc.cache.Delete(ctx, room.ID); err != nil {
			uc.logger.Warn("reconcile: failed to invalidate room cache", zap.String("room_id", room.ID), zap.Error(err))
		}
		corrected++
	}
	return corrected, nil
}
