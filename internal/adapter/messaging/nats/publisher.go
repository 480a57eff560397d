package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/roommatefinder/room-service/internal/config"
	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.uber.org/zap"
)

const (
	RoomCreatedSubject = "room.created"
	RoomUpdatedSubject = "room.updated"
	RoomDeletedSubject = "room.deleted"
	RoomLikedSubject   = "room.liked"
	RoomUnlikedSubject = "room.unliked"
)

type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

type roomEventPayload struct {
	ID         string  `json:"id"`
	Title      string  `json:"title,omitempty"`
	Location   string  `json:"location,omitempty"`
	RentAmount float64 `json:"rentAmount,omitempty"`
	LikeCount  int64   `json:"likeCount"`
}

type likeEventPayload struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

func NewPublisher(cfg *config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logger.Error("NATS error", zap.String("subject", sub.Subject), zap.Error(err))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: logger}, nil
}

func (p *Publisher) RoomCreated(ctx context.Context, room *domain.Room) error {
	return p.publishRoom(RoomCreatedSubject, room)
}

func (p *Publisher) RoomUpdated(ctx context.Context, room *domain.Room) error {
	return p.publishRoom(RoomUpdatedSubject, room)
}

func (p *Publisher) RoomDeleted(ctx context.Context, roomID string) error {
	return p.publish(RoomDeletedSubject, roomEventPayload{ID: roomID})
}

func (p *Publisher) RoomLiked(ctx context.Context, roomID, userID string) error {
	return p.publish(RoomLikedSubject, likeEventPayload{RoomID: roomID, UserID: userID})
}

func (p *Publisher) RoomUnliked(ctx context.Context, roomID, userID string) error {
	return p.publish(RoomUnlikedSubject, likeEventPayload{RoomID: roomID, UserID: userID})
}

func (p *Publisher) publishRoom(subject string, room *domain.Room) error {
	return p.publish(subject, roomEventPayload{
		ID:         room.ID,
		Title:      room.Title,
		Location:   room.Location,
		RentAmount: room.RentAmount,
		LikeCount:  room.LikeCount,
	})
}

func (p *Publisher) publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", subject, err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish NATS message", zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Debug("Published NATS message", zap.String("subject", subject))
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}
