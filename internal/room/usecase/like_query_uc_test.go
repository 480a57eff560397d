package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type queryFixture struct {
	rooms *MockRoomRepository
	likes *MockLikeRepository
	users *MockUserDirectory
	uc    *LikeQueryUsecase
}

func newQueryFixture() *queryFixture {
	f := &queryFixture{
		rooms: &MockRoomRepository{},
		likes: &MockLikeRepository{},
		users: &MockUserDirectory{},
	}
	f.uc = NewLikeQueryUsecase(f.rooms, f.likes, f.users, zap.NewNop())
	return f
}

func TestStatus_AnonymousGetsCountOnly(t *testing.T) {
	f := newQueryFixture()
	room := roomFixture()
	room.LikeCount = 5
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)

	status, err := f.uc.Status(context.Background(), room.ID, domain.Identity{})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), status.LikeCount)
	assert.False(t, status.HasLiked)
	f.likes.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatus_MissingRoomIsNotAnError(t *testing.T) {
	f := newQueryFixture()
	f.rooms.On("FindByID", mock.Anything, "gone").Return(nil, domain.ErrRoomNotFound)

	status, err := f.uc.Status(context.Background(), "gone", alice)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), status.LikeCount)
	assert.False(t, status.HasLiked)
}

func TestStatus_AuthenticatedCaller(t *testing.T) {
	f := newQueryFixture()
	room := roomFixture()
	room.LikeCount = 2
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	f.likes.On("Exists", mock.Anything, room.ID, "a@x.com").Return(true, nil)

	status, err := f.uc.Status(context.Background(), room.ID, alice)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), status.LikeCount)
	assert.True(t, status.HasLiked)
}

func TestStatus_ClampsNegativeStoredCounter(t *testing.T) {
	f := newQueryFixture()
	room := roomFixture()
	room.LikeCount = -2
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)

	status, err := f.uc.Status(context.Background(), room.ID, domain.Identity{})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), status.LikeCount)
}

func TestLikedBy_EnrichesWithProfiles(t *testing.T) {
	f := newQueryFixture()
	now := time.Now().UTC()
	entries := []*domain.Like{
		{RoomID: "r1", UserID: "b@x.com", CreatedAt: now},
		{RoomID: "r1", UserID: "a@x.com", CreatedAt: now.Add(-time.Hour)},
	}
	f.likes.On("FindByRoomID", mock.Anything, "r1").Return(entries, nil)
	f.users.On("FindByEmail", mock.Anything, "b@x.com").Return(&domain.UserProfile{Email: "b@x.com", Name: "Bob"}, nil)
	// a@x.com has no directory entry; the liker still appears.
	f.users.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, nil)

	likers, err := f.uc.LikedBy(context.Background(), "r1")

	assert.NoError(t, err)
	assert.Len(t, likers, 2)
	assert.Equal(t, "b@x.com", likers[0].UserID)
	assert.NotNil(t, likers[0].Profile)
	assert.Equal(t, "Bob", likers[0].Profile.Name)
	assert.Equal(t, "a@x.com", likers[1].UserID)
	assert.Nil(t, likers[1].Profile)
}

func TestLikedRooms_NewestLikeFirst(t *testing.T) {
	f := newQueryFixture()
	now := time.Now().UTC()
	// The repository returns likes sorted by creation time descending:
	// r2 was liked after r1.
	entries := []*domain.Like{
		{RoomID: "r2", UserID: "a@x.com", CreatedAt: now},
		{RoomID: "r1", UserID: "a@x.com", CreatedAt: now.Add(-time.Hour)},
	}
	f.likes.On("FindByUserID", mock.Anything, "a@x.com").Return(entries, nil)
	f.rooms.On("FindByID", mock.Anything, "r2").Return(&domain.Room{ID: "r2", Title: "Room B"}, nil)
	f.rooms.On("FindByID", mock.Anything, "r1").Return(&domain.Room{ID: "r1", Title: "Room A"}, nil)

	rooms, err := f.uc.LikedRooms(context.Background(), "a@x.com")

	assert.NoError(t, err)
	assert.Len(t, rooms, 2)
	assert.Equal(t, "r2", rooms[0].ID)
	assert.Equal(t, "r1", rooms[1].ID)
}

func TestLikedRooms_DropsDeletedRooms(t *testing.T) {
	f := newQueryFixture()
	now := time.Now().UTC()
	entries := []*domain.Like{
		{RoomID: "r2", UserID: "a@x.com", CreatedAt: now},
		{RoomID: "r1", UserID: "a@x.com", CreatedAt: now.Add(-time.Hour)},
	}
	f.likes.On("FindByUserID", mock.Anything, "a@x.com").Return(entries, nil)
	f.rooms.On("FindByID", mock.Anything, "r2").Return(nil, domain.ErrRoomNotFound)
	f.rooms.On("FindByID", mock.Anything, "r1").Return(&domain.Room{ID: "r1", Title: "Room A"}, nil)

	rooms, err := f.uc.LikedRooms(context.Background(), "a@x.com")

	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, "r1", rooms[0].ID)
}
