package domain

import "context"

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Room, error)
	FindAll(ctx context.Context) ([]*Room, error)
	// IncrementLikeCount applies delta to the room's counter as a single
	// atomic store operation and returns the resulting stored value.
	// Returns ErrRoomNotFound when the room no longer exists.
	IncrementLikeCount(ctx context.Context, id string, delta int64) (int64, error)
	// SetLikeCount overwrites the counter; reserved for the reconcile pass.
	SetLikeCount(ctx context.Context, id string, count int64) error
	AppendPhotoURL(ctx context.Context, id string, url string) error
}

type LikeRepository interface {
	// Add inserts a ledger entry. Returns ErrAlreadyLiked when an entry
	// for (RoomID, UserID) already exists; the unique index makes this
	// check-and-insert atomic.
	Add(ctx context.Context, like *Like) error
	// Upsert inserts the entry only if absent and reports whether a new
	// entry was created. Never returns ErrAlreadyLiked.
	Upsert(ctx context.Context, like *Like) (bool, error)
	// Remove deletes the entry for the pair. Returns ErrNotLiked when no
	// entry existed.
	Remove(ctx context.Context, roomID, userID string) error
	Exists(ctx context.Context, roomID, userID string) (bool, error)
	FindByRoomID(ctx context.Context, roomID string) ([]*Like, error)
	FindByUserID(ctx context.Context, userID string) ([]*Like, error)
	CountByRoomID(ctx context.Context, roomID string) (int64, error)
	DeleteByRoomID(ctx context.Context, roomID string) (int64, error)
}

// UserDirectory is the external user store consulted to enrich liked-by
// results. A missing profile is not an error.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*UserProfile, error)
}

// RoomCache is the read cache in front of the room store. Implementations
// must treat a miss as (nil, nil).
type RoomCache interface {
	Get(ctx context.Context, id string) (*Room, error)
	Set(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher emits room lifecycle and engagement events. Publishing is
// best effort; callers log failures and move on.
type EventPublisher interface {
	RoomCreated(ctx context.Context, room *Room) error
	RoomUpdated(ctx context.Context, room *Room) error
	RoomDeleted(ctx context.Context, roomID string) error
	RoomLiked(ctx context.Context, roomID, userID string) error
	RoomUnliked(ctx context.Context, roomID, userID string) error
}

// LikeNotifier tells a room owner somebody liked their room.
type LikeNotifier interface {
	NotifyRoomLiked(ownerEmail, roomTitle, likerEmail string) error
}

// PhotoStorage stores uploaded room photos and returns a public URL.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}
