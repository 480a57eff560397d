package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrRoomNotFound    = errors.New("room not found")
	ErrOwnRoom         = errors.New("cannot like own room")
	ErrAlreadyLiked    = errors.New("already liked")
	ErrNotLiked        = errors.New("not liked yet")
	ErrForbidden       = errors.New("action forbidden")
	ErrInvalidRoomData = errors.New("invalid room data")
)
