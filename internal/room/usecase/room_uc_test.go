package usecase

import (
	"context"
	"testing"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type roomUCFixture struct {
	rooms  *MockRoomRepository
	likes  *MockLikeRepository
	cache  *MockRoomCache
	events *MockEventPublisher
	photos *MockPhotoStorage
	uc     *RoomUsecase
}

func newRoomUCFixture() *roomUCFixture {
	f := &roomUCFixture{
		rooms:  &MockRoomRepository{},
		likes:  &MockLikeRepository{},
		cache:  &MockRoomCache{},
		events: &MockEventPublisher{},
		photos: &MockPhotoStorage{},
	}
	f.uc = NewRoomUsecase(f.rooms, f.likes, f.cache, f.events, f.photos, zap.NewNop())
	return f
}

func TestCreateRoom_Success(t *testing.T) {
	f := newRoomUCFixture()
	f.rooms.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Title == "Room A" && r.OwnerEmail == "owner@x.com" && r.LikeCount == 0
	})).Return(nil)
	f.events.On("RoomCreated", mock.Anything, mock.Anything).Return(nil)

	room, err := f.uc.CreateRoom(context.Background(), owner, CreateRoomInput{
		Title:      "Room A",
		Location:   "Dhaka",
		RentAmount: 5000,
		Available:  true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "owner@x.com", room.OwnerEmail)
	assert.Equal(t, int64(0), room.LikeCount)
	f.events.AssertCalled(t, "RoomCreated", mock.Anything, mock.Anything)
}

func TestCreateRoom_Unauthenticated(t *testing.T) {
	f := newRoomUCFixture()

	_, err := f.uc.CreateRoom(context.Background(), domain.Identity{}, CreateRoomInput{
		Title: "Room A", Location: "Dhaka", RentAmount: 5000,
	})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	f.rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRoom_RejectsInvalidData(t *testing.T) {
	f := newRoomUCFixture()

	cases := []CreateRoomInput{
		{Location: "Dhaka", RentAmount: 5000},
		{Title: "Room A", RentAmount: 5000},
		{Title: "Room A", Location: "Dhaka", RentAmount: 0},
		{Title: "Room A", Location: "Dhaka", RentAmount: -50},
	}
	for _, in := range cases {
		_, err := f.uc.CreateRoom(context.Background(), owner, in)
		assert.ErrorIs(t, err, domain.ErrInvalidRoomData)
	}
	f.rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetRoom_CacheHitSkipsRepository(t *testing.T) {
	f := newRoomUCFixture()
	room := roomFixture()
	f.cache.On("Get", mock.Anything, room.ID).Return(room, nil)

	got, err := f.uc.GetRoom(context.Background(), room.ID)

	assert.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)
	f.rooms.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetRoom_CacheMissFillsCache(t *testing.T) {
	f := newRoomUCFixture()
	room := roomFixture()
	f.cache.On("Get", mock.Anything, room.ID).Return(nil, nil)
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	f.cache.On("Set", mock.Anything, room).Return(nil)

	got, err := f.uc.GetRoom(context.Background(), room.ID)

	assert.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)
	f.cache.AssertCalled(t, "Set", mock.Anything, room)
}

func TestUpdateRoom_OwnerOnly(t *testing.T) {
	f := newRoomUCFixture()
	room := roomFixture()
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)

	_, err := f.uc.UpdateRoom(context.Background(), room.ID, alice, UpdateRoomInput{Title: "Taken over"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.rooms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateRoom_PartialFields(t *testing.T) {
	f := newRoomUCFixture()
	room := roomFixture()
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	f.rooms.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.cache.On("Delete", mock.Anything, room.ID).Return(nil)
	f.events.On("RoomUpdated", mock.Anything, mock.Anything).Return(nil)

	updated, err := f.uc.UpdateRoom(context.Background(), room.ID, owner, UpdateRoomInput{RentAmount: 6000})

	assert.NoError(t, err)
	assert.Equal(t, float64(6000), updated.RentAmount)
	assert.Equal(t, "Room A", updated.Title)
	assert.Equal(t, "Dhaka", updated.Location)
	f.cache.AssertCalled(t, "Delete", mock.Anything, room.ID)
}

func TestDeleteRoom_CascadesIntoLedger(t *testing.T) {
	f := newRoomUCFixture()
	room := roomFixture()
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	f.likes.On("DeleteByRoomID", mock.Anything, room.ID).Return(int64(3), nil)
	f.rooms.On("Delete", mock.Anything, room.ID).Return(nil)
	f.cache.On("Delete", mock.Anything, room.ID).Return(nil)
	f.events.On("RoomDeleted", mock.Anything, room.ID).Return(nil)

	err := f.uc.DeleteRoom(context.Background(), room.ID, owner)

	assert.NoError(t, err)
	f.likes.AssertCalled(t, "DeleteByRoomID", mock.Anything, room.ID)
	f.events.AssertCalled(t, "RoomDeleted", mock.Anything, room.ID)
}

func TestDeleteRoom_NonOwnerForbidden(t *testing.T) {
	f := newRoomUCFixture()
	room := roomFixture()
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)

	err := f.uc.DeleteRoom(context.Background(), room.ID, bob)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.likes.AssertNotCalled(t, "DeleteByRoomID", mock.Anything, mock.Anything)
	f.rooms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUploadPhoto_Success(t *testing.T) {
	f := newRoomUCFixture()
	room := roomFixture()
	data := []byte{0xff, 0xd8, 0xff}
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	f.photos.On("Upload", mock.Anything, "front.jpg", data).Return("http://minio/room-photos/photos/abc.jpg", nil)
	f.rooms.On("AppendPhotoURL", mock.Anything, room.ID, "http://minio/room-photos/photos/abc.jpg").Return(nil)
	f.cache.On("Delete", mock.Anything, room.ID).Return(nil)

	url, err := f.uc.UploadPhoto(context.Background(), room.ID, owner, "front.jpg", data)

	assert.NoError(t, err)
	assert.Equal(t, "http://minio/room-photos/photos/abc.jpg", url)
}

func TestUploadPhoto_NonOwnerForbidden(t *testing.T) {
	f := newRoomUCFixture()
	room := roomFixture()
	f.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)

	_, err := f.uc.UploadPhoto(context.Background(), room.ID, alice, "front.jpg", []byte("x"))

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.photos.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_CorrectsDriftedCounters(t *testing.T) {
	rooms := &MockRoomRepository{}
	likes := &MockLikeRepository{}
	cache := &MockRoomCache{}
	uc := NewReconcileUsecase(rooms, likes, cache, zap.NewNop())

	drifted := &domain.Room{ID: "r1", LikeCount: 7}
	healthy := &domain.Room{ID: "r2", LikeCount: 2}
	rooms.On("FindAll", mock.Anything).Return([]*domain.Room{drifted, healthy}, nil)
	likes.On("CountByRoomID", mock.Anything, "r1").Return(int64(4), nil)
	likes.On("CountByRoomID", mock.Anything, "r2").Return(int64(2), nil)
	rooms.On("SetLikeCount", mock.Anything, "r1", int64(4)).Return(nil)
	cache.On("Delete", mock.Anything, "r1").Return(nil)

	corrected, err := uc.ReconcileLikeCounts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, corrected)
	rooms.AssertNotCalled(t, "SetLikeCount", mock.Anything, "r2", mock.Anything)
}
