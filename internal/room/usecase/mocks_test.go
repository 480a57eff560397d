package usecase

import (
	"context"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"github.com/stretchr/testify/mock"
)

type MockRoomRepository struct{ mock.Mock }

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockRoomRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomRepository) FindAll(ctx context.Context) ([]*domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}
func (m *MockRoomRepository) IncrementLikeCount(ctx context.Context, id string, delta int64) (int64, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRoomRepository) SetLikeCount(ctx context.Context, id string, count int64) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}
func (m *MockRoomRepository) AppendPhotoURL(ctx context.Context, id string, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

type MockLikeRepository struct{ mock.Mock }

func (m *MockLikeRepository) Add(ctx context.Context, like *domain.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}
func (m *MockLikeRepository) Upsert(ctx context.Context, like *domain.Like) (bool, error) {
	args := m.Called(ctx, like)
	return args.Bool(0), args.Error(1)
}
func (m *MockLikeRepository) Remove(ctx context.Context, roomID, userID string) error {
	args := m.Called(ctx, roomID, userID)
	return args.Error(0)
}
func (m *MockLikeRepository) Exists(ctx context.Context, roomID, userID string) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLikeRepository) FindByRoomID(ctx context.Context, roomID string) ([]*domain.Like, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Like), args.Error(1)
}
func (m *MockLikeRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Like, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Like), args.Error(1)
}
func (m *MockLikeRepository) CountByRoomID(ctx context.Context, roomID string) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLikeRepository) DeleteByRoomID(ctx context.Context, roomID string) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

type MockRoomCache struct{ mock.Mock }

func (m *MockRoomCache) Get(ctx context.Context, id string) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomCache) Set(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockRoomCache) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) RoomCreated(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockEventPublisher) RoomUpdated(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockEventPublisher) RoomDeleted(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}
func (m *MockEventPublisher) RoomLiked(ctx context.Context, roomID, userID string) error {
	args := m.Called(ctx, roomID, userID)
	return args.Error(0)
}
func (m *MockEventPublisher) RoomUnliked(ctx context.Context, roomID, userID string) error {
	args := m.Called(ctx, roomID, userID)
	return args.Error(0)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

type MockLikeNotifier struct{ mock.Mock }

func (m *MockLikeNotifier) NotifyRoomLiked(ownerEmail, roomTitle, likerEmail string) error {
	args := m.Called(ownerEmail, roomTitle, likerEmail)
	return args.Error(0)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}
