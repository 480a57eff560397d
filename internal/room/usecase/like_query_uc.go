package usecase

import (
	"context"
	"errors"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.uber.org/zap"
)

// LikeQueryUsecase answers the read-only like questions. Status queries are
// open to anonymous callers; a missing room is reported as zero likes, not
// as an error.
type LikeQueryUsecase struct {
	rooms  domain.RoomRepository
	likes  domain.LikeRepository
	users  domain.UserDirectory
	logger *zap.Logger
}

func NewLikeQueryUsecase(
	rooms domain.RoomRepository,
	likes domain.LikeRepository,
	users domain.UserDirectory,
	logger *zap.Logger,
) *LikeQueryUsecase {
	return &LikeQueryUsecase{rooms: rooms, likes: likes, users: users, logger: logger}
}

func (uc *LikeQueryUsecase) Status(ctx context.Context, roomID string, caller domain.Identity) (*domain.LikeStatus, error) {
	room, err := uc.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return &domain.LikeStatus{LikeCount: 0, HasLiked: false}, nil
		}
		return nil, err
	}

	status := &domain.LikeStatus{LikeCount: room.DisplayLikeCount()}
	if caller.IsAnonymous() {
		return status, nil
	}

	liked, err := uc.likes.Exists(ctx, roomID, caller.Key())
	if err != nil {
		return nil, err
	}
	status.HasLiked = liked
	return status, nil
}

// LikedBy lists everyone who liked the room, newest like first, each entry
// enriched with a user directory profile when one exists.
func (uc *LikeQueryUsecase) LikedBy(ctx context.Context, roomID string) ([]*domain.Liker, error) {
	entries, err := uc.likes.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	likers := make([]*domain.Liker, 0, len(entries))
	for _, entry := range entries {
		liker := &domain.Liker{UserID: entry.UserID, CreatedAt: entry.CreatedAt}
		profile, err := uc.users.FindByEmail(ctx, entry.UserID)
		if err != nil {
			uc.logger.Warn("failed to look up liker profile",
				zap.String("room_id", roomID), zap.String("user_id", entry.UserID), zap.Error(err))
		} else {
			liker.Profile = profile
		}
		likers = append(likers, liker)
	}
	return likers, nil
}

// LikedRooms lists the rooms the user has liked, ordered by like creation
// time descending. Likes whose room has since been deleted are dropped.
func (uc *LikeQueryUsecase) LikedRooms(ctx context.Context, userID string) ([]*domain.Room, error) {
	entries, err := uc.likes.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rooms := make([]*domain.Room, 0, len(entries))
	for _, entry := range entries {
		room, err := uc.rooms.FindByID(ctx, entry.RoomID)
		if err != nil {
			if errors.Is(err, domain.ErrRoomNotFound) {
				continue
			}
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}
