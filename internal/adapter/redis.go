package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNil is returned by Get when the key does not exist
var ErrNil = errors.New("redis: key does not exist")

// Entry is one key/value pair of a batched write
type Entry struct {
	Key   string
	Value string
}

// ZMember is one member of a sorted set together with its score
type ZMember struct {
	Member string
	Score  float64
}

// Redis defines the key-value operations the store needs, narrowed down to
// plain Go values to enable mocking
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=Redis=MockRedis
type Redis interface {
	// Get returns the value of key, or ErrNil if the key does not exist
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites key with value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// SetEntries writes all entries with a shared expiry in one pipeline.
	// Any individual failure surfaces as a single aggregate error.
	SetEntries(ctx context.Context, entries []Entry, ttl time.Duration) error

	// Del removes the given keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error

	// IncrBy atomically adds delta to the integer at key and returns the
	// post-increment value
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)

	// ZAdd adds member with score to the sorted set at key
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRevRangeWithScores returns members of the sorted set at key ordered by
	// descending score
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) ([]ZMember, error)

	// Ping checks if the store is reachable
	Ping(ctx context.Context) error

	// Close closes the connection
	Close() error
}

// RealRedis wraps the actual Redis client
type RealRedis struct {
	client *redis.Client
}

// NewRedis creates a new Redis adapter
func NewRedis(addr, password string, db int) Redis {
	return &RealRedis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (r *RealRedis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNil
	}
	return val, err
}

func (r *RealRedis) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RealRedis) SetEntries(ctx context.Context, entries []Entry, ttl time.Duration) error {
	cmds, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range entries {
			pipe.Set(ctx, e.Key, e.Value, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	failed := 0
	var first error
	for _, cmd := range cmds {
		if cmdErr := cmd.Err(); cmdErr != nil {
			failed++
			if first == nil {
				first = cmdErr
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("pipeline failed for %d of %d entries: %w", failed, len(entries), first)
	}

	return nil
}

func (r *RealRedis) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RealRedis) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return r.client.IncrBy(ctx, key, delta).Result()
}

func (r *RealRedis) ZAdd(ctx context.Context, key string, score float64, member string) error {
	return r.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (r *RealRedis) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) ([]ZMember, error) {
	zs, err := r.client.ZRevRangeWithScores(ctx, key, start, stop).Result()
	if err != nil {
		return nil, err
	}

	members := make([]ZMember, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected member type %T", z.Member)
		}
		members = append(members, ZMember{Member: member, Score: z.Score})
	}

	return members, nil
}

func (r *RealRedis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RealRedis) Close() error {
	return r.client.Close()
}
