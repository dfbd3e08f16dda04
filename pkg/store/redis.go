package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/inklab/inkdoc/pkg/codec"
	apperrors "github.com/inklab/inkdoc/pkg/errors"
	"github.com/inklab/inkdoc/pkg/observability"
)

// redisKeyPrefix namespaces document keys in a shared Redis instance.
const redisKeyPrefix = "inkdoc:doc:"

// RedisStore persists documents in Redis. Suitable for multi-instance
// deployments where documents are shared session state rather than
// long-term archives.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig configures a Redis-backed store.
type RedisConfig struct {
	Addr     string // host:port
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection with a
// ping before returning.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "connect redis %s", cfg.Addr)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Save(ctx context.Context, rec codec.DocumentRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "encode %s", rec.ID)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+rec.ID, data, 0).Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "write %s", rec.ID)
	}
	observability.Store().OnSave(ctx, rec.ID, len(data))
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (codec.DocumentRecord, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Store().OnLoad(ctx, id, false)
		return codec.DocumentRecord{}, ErrNotFound
	}
	if err != nil {
		return codec.DocumentRecord{}, apperrors.Wrap(apperrors.ErrCodeStore, err, "read %s", id)
	}

	var rec codec.DocumentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return codec.DocumentRecord{}, apperrors.Wrap(apperrors.ErrCodeStore, err, "decode %s", id)
	}
	observability.Store().OnLoad(ctx, id, true)
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "delete %s", id)
	}
	if n == 0 {
		return ErrNotFound
	}
	observability.Store().OnDelete(ctx, id)
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(redisKeyPrefix):])
	}
	return ids, iter.Err()
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
