package lockout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/go-redis/redis/v8"
)

const defaultRedisPrefix = "gophvault:lockout:"

// RedisStore shares lockout records between processes. Blocked records are
// written with a TTL ending at the block expiry, so an expired block simply
// disappears.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// NewRedisStore connects to Redis and checks the connection with PING.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Address, err)
	}
	return NewRedisStoreFromClient(rdb, opts.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) key(folderID string) string {
	return s.prefix + folderID
}

func (s *RedisStore) Get(ctx context.Context, folderID string) (models.LockoutRecord, error) {
	data, err := s.client.Get(ctx, s.key(folderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.LockoutRecord{}, nil
	}
	if err != nil {
		return models.LockoutRecord{}, fmt.Errorf("failed to get lockout[%s]: %w", folderID, err)
	}

	var rec models.LockoutRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.LockoutRecord{}, fmt.Errorf("failed to decode lockout[%s]: %w", folderID, err)
	}
	return rec, nil
}

func (s *RedisStore) Set(ctx context.Context, folderID string, rec models.LockoutRecord) error {
	if rec == (models.LockoutRecord{}) {
		return s.Delete(ctx, folderID)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode lockout[%s]: %w", folderID, err)
	}

	var ttl time.Duration
	if !rec.BlockedUntil.IsZero() {
		ttl = rec.BlockedUntil.Sub(s.now())
		if ttl <= 0 {
			return s.Delete(ctx, folderID)
		}
	}

	if err := s.client.Set(ctx, s.key(folderID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set lockout[%s]: %w", folderID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, folderID string) error {
	if err := s.client.Del(ctx, s.key(folderID)).Err(); err != nil {
		return fmt.Errorf("failed to delete lockout[%s]: %w", folderID, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
