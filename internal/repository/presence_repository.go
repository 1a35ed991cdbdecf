package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	presenceKeyPrefix = "presence:"
	statusChannel     = "user_status"

	// Online keys expire if the server dies without cleaning up; offline
	// keys linger briefly to avoid flicker on quick reconnects
	onlineTTL  = 5 * time.Minute
	offlineTTL = 1 * time.Minute
)

type PresenceRepository interface {
	SetOnline(ctx context.Context, userID uint) error
	SetOffline(ctx context.Context, userID uint) error
	GetStatus(ctx context.Context, userID uint) (string, error)
	FilterOnline(ctx context.Context, userIDs []uint) ([]uint, error)
	SubscribeStatusUpdates(ctx context.Context) (<-chan *models.StatusUpdate, error)
	Close() error
}

type presenceRepository struct {
	client *redis.Client
	pubsub *redis.PubSub

	// instanceID marks this process's own publications so the
	// subscription can drop them; local clients already heard those
	// transitions from the hub.
	instanceID string
}

func NewPresenceRepository(client *redis.Client) PresenceRepository {
	return &presenceRepository{client: client, instanceID: uuid.New().String()}
}

func presenceKey(userID uint) string {
	return presenceKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

func (r *presenceRepository) SetOnline(ctx context.Context, userID uint) error {
	if err := r.client.Set(ctx, presenceKey(userID), models.PresenceOnline, onlineTTL).Err(); err != nil {
		return fmt.Errorf("failed to set presence online: %w", err)
	}
	return r.publish(ctx, &models.StatusUpdate{UserID: userID, Status: models.PresenceOnline})
}

func (r *presenceRepository) SetOffline(ctx context.Context, userID uint) error {
	if err := r.client.Set(ctx, presenceKey(userID), models.PresenceOffline, offlineTTL).Err(); err != nil {
		return fmt.Errorf("failed to set presence offline: %w", err)
	}
	return r.publish(ctx, &models.StatusUpdate{UserID: userID, Status: models.PresenceOffline})
}

func (r *presenceRepository) GetStatus(ctx context.Context, userID uint) (string, error) {
	status, err := r.client.Get(ctx, presenceKey(userID)).Result()
	if err == redis.Nil {
		return models.PresenceOffline, nil
	}
	return status, err
}

// FilterOnline returns the subset of userIDs currently online, using a
// pipeline to keep it a single roundtrip
func (r *presenceRepository) FilterOnline(ctx context.Context, userIDs []uint) ([]uint, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	cmds, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Get(ctx, presenceKey(id))
		}
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to query presence: %w", err)
	}

	online := make([]uint, 0, len(userIDs))
	for i, cmd := range cmds {
		if val, _ := cmd.(*redis.StringCmd).Result(); val == models.PresenceOnline {
			online = append(online, userIDs[i])
		}
	}
	return online, nil
}

func (r *presenceRepository) publish(ctx context.Context, update *models.StatusUpdate) error {
	update.Origin = r.instanceID
	payload, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, statusChannel, payload).Err()
}

func (r *presenceRepository) SubscribeStatusUpdates(ctx context.Context) (<-chan *models.StatusUpdate, error) {
	if r.pubsub == nil {
		r.pubsub = r.client.Subscribe(ctx, statusChannel)
	}

	ch := make(chan *models.StatusUpdate)
	go func() {
		defer close(ch)
		for msg := range r.pubsub.Channel() {
			var update models.StatusUpdate
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				slog.Error("failed to unmarshal status update", "error", err)
				continue
			}
			if update.Origin == r.instanceID {
				continue
			}
			select {
			case ch <- &update:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (r *presenceRepository) Close() error {
	if r.pubsub != nil {
		return r.pubsub.Close()
	}
	return nil
}
