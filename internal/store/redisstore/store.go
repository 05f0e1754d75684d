package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitWindow = time.Minute

type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// AllowChat applies a fixed-window counter per rate key. limit <= 0
// disables limiting. Fails open: when redis itself is unreachable the
// turn is allowed and the error returned for logging; chat availability
// wins over strict limiting.
func (s *Store) AllowChat(ctx context.Context, key string, limit int) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	rlKey := "chat:rl:" + key
	n, err := s.rdb.Incr(ctx, rlKey).Result()
	if err != nil {
		return true, err
	}
	if n == 1 {
		// first hit opens the window
		if err := s.rdb.Expire(ctx, rlKey, rateLimitWindow).Err(); err != nil {
			return true, err
		}
	}
	return n <= int64(limit), nil
}
