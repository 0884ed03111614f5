package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vivaham/internal/config"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "vivaham:sess:"

// RedisStorage implements fiber.Storage on top of go-redis so sessions
// survive restarts and are shared between instances.
type RedisStorage struct {
	Client  *redis.Client
	timeout time.Duration
}

// NewRedisStorage initializes a Redis client from config.
func NewRedisStorage(cfg *config.Config) *RedisStorage {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisStorage{Client: redis.NewClient(opts), timeout: 3 * time.Second}
}

func (s *RedisStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Ping checks the connection.
func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// Get returns nil, nil when key does not exist.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", key, err)
	}
	return val, nil
}

// Set stores val; exp 0 means no expiry.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.Client.Set(ctx, redisKeyPrefix+key, val, exp).Err(); err != nil {
		return fmt.Errorf("failed to set session %s: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.Client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", key, err)
	}
	return nil
}

// Reset removes every session key, leaving other keys in the database alone.
func (s *RedisStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.Client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to reset sessions: %w", err)
		}
	}
	return iter.Err()
}

func (s *RedisStorage) Close() error {
	return s.Client.Close()
}
