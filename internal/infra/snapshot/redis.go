package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/infra"
	"cappa-booking/internal/pkg/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "booking:flow:"

// RedisStore keeps in-progress flow snapshots with a TTL so abandoned flows
// expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, infra.WrapRepoErr("failed to ping redis", err, infra.KindUnavailable)
	}

	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

func (s *RedisStore) Save(ctx context.Context, key uuid.UUID, snap *booking.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return infra.WrapRepoErr("failed to encode snapshot", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key.String(), payload, s.ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to store snapshot", err, infra.KindUnavailable)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, key uuid.UUID) (*booking.Snapshot, error) {
	payload, err := s.client.Get(ctx, keyPrefix+key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapRepoErr("snapshot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load snapshot", err, infra.KindUnavailable)
	}

	var snap booking.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, infra.WrapRepoErr("failed to decode snapshot", err)
	}
	return &snap, nil
}

func (s *RedisStore) Delete(ctx context.Context, key uuid.UUID) error {
	if err := s.client.Del(ctx, keyPrefix+key.String()).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete snapshot", err, infra.KindUnavailable)
	}
	return nil
}
