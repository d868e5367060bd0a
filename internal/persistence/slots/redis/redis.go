// Package redis keeps slots as plain Redis string values.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/tpv/internal/persistence"
)

type Config struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

// Options prefers URL when set and falls back to the address fields.
func (c Config) Options() (*redis.Options, error) {
	if c.URL != "" {
		opt, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}

		return opt, nil
	}

	addr := c.Addr
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	return &redis.Options{
		Addr:     addr,
		Password: c.Password,
		DB:       c.DB,
	}, nil
}

type Slot struct {
	client *redis.Client
}

// New connects and pings the server before returning.
func New(ctx context.Context, cfg Config) (*Slot, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Slot{client: client}, nil
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, persistence.ErrSlotEmpty
	}

	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	return data, nil
}

func (s *Slot) Put(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

func (s *Slot) Close() error {
	return s.client.Close()
}
