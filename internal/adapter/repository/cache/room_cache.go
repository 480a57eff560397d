package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/roommatefinder/room-service/internal/config"
	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.uber.org/zap"
)

const roomTTL = 1 * time.Hour

// RoomCache is a cache-aside layer for room reads. Every mutation path,
// like/unlike included, deletes the key so the counter never goes stale for
// longer than one request.
type RoomCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}
	logger.Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return rdb, nil
}

func NewRoomCache(client *redis.Client, logger *zap.Logger) *RoomCache {
	return &RoomCache{client: client, logger: logger}
}

func (c *RoomCache) Get(ctx context.Context, id string) (*domain.Room, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("room cache get %s: %w", id, err)
	}

	var room domain.Room
	if err := json.Unmarshal(data, &room); err != nil {
		c.logger.Warn("room cache holds undecodable entry, dropping it", zap.String("room_id", id), zap.Error(err))
		_ = c.client.Del(ctx, key(id)).Err()
		return nil, nil
	}
	return &room, nil
}

func (c *RoomCache) Set(ctx context.Context, room *domain.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(room.ID), data, roomTTL).Err()
}

func (c *RoomCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, key(id)).Err()
}

func key(id string) string {
	return "room:" + id
}
