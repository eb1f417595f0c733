package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces offset keys and the notification channel.
const DefaultRedisPrefix = "simpledraggable:"

// RedisConfig configures a redis-backed store.
type RedisConfig struct {
	// Addr is the redis server address (host:port).
	Addr string

	// Password is optional.
	Password string

	// DB selects the redis database number.
	DB int

	// Prefix namespaces keys and the pub/sub channel.
	// Defaults to DefaultRedisPrefix.
	Prefix string
}

// RedisStore persists offsets in redis and broadcasts changes over pub/sub,
// so independent processes sharing the server sync offsets live.
type RedisStore struct {
	client *redis.Client
	prefix string

	mu     sync.Mutex
	subs   []*redis.PubSub
	closed bool
}

// NewRedis connects to redis and verifies the connection.
func NewRedis(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultRedisPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *RedisStore) key(key string) string { return s.prefix + key }
func (s *RedisStore) channel() string       { return s.prefix + "events" }

// Get retrieves the value for key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set stores value under key and publishes a change event.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return s.publish(ctx, Event{Key: key, Value: value})
}

// Delete removes key and publishes an empty-value change event.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return s.publish(ctx, Event{Key: key})
}

func (s *RedisStore) publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel(), payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe listens on the store's pub/sub channel and forwards decoded
// events to fn. fn runs on the subscription goroutine.
func (s *RedisStore) Subscribe(ctx context.Context, fn func(Event)) (func(), error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	ps := s.client.Subscribe(ctx, s.channel())
	s.subs = append(s.subs, ps)
	s.mu.Unlock()

	// Force the subscription to be established before returning, so callers
	// do not miss events published right after Subscribe.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		for msg := range ps.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			fn(ev)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { _ = ps.Close() })
	}, nil
}

// Close terminates all subscriptions and the client connection.
func (s *RedisStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	for _, ps := range s.subs {
		_ = ps.Close()
	}
	s.subs = nil
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
