package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

var ErrSnapshotNotFound = errors.New("room snapshot not found")

// RoomRepository persists whole-room snapshots; the in-memory room state
// stays authoritative, the stored copy exists for consumers and restarts.
type RoomRepository interface {
	CreateOrUpdate(ctx context.Context, snapshot *entity.RoomSnapshot) error
	GetByCode(ctx context.Context, code string) (*entity.RoomSnapshot, error)
	DeleteByCode(ctx context.Context, code string) error
}

type dbRoom struct {
	client *redis.Client
}

func NewRoomRepository(client *redis.Client) RoomRepository {
	return &dbRoom{
		client: client,
	}
}

func (that *dbRoom) CreateOrUpdate(ctx context.Context, snapshot *entity.RoomSnapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal room snapshot: %w", err)
	}

	roomKey := "room:" + snapshot.Code
	if err = that.client.Set(ctx, roomKey, snapshotJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set room snapshot: %w", err)
	}

	return nil
}

func (that *dbRoom) GetByCode(ctx context.Context, code string) (*entity.RoomSnapshot, error) {
	roomKey := "room:" + code

	response, err := that.client.Get(ctx, roomKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, code)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room snapshot: %w", err)
	}

	var snapshot entity.RoomSnapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room snapshot: %w", err)
	}

	return &snapshot, nil
}

func (that *dbRoom) DeleteByCode(ctx context.Context, code string) error {
	roomKey := "room:" + code

	if err := that.client.Del(ctx, roomKey).Err(); err != nil {
		return fmt.Errorf("failed to delete room snapshot: %w", err)
	}

	return nil
}
