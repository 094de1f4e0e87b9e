package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/p2lu/turingtoy/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key prefix used when WithPrefix is not given.
const DefaultPrefix = "turingtoy:run:"

// IndexID is the key suffix of the run index. It cannot be used as a run ID.
const IndexID = "index"

// ErrReservedRunID is returned when saving a run under IndexID.
var ErrReservedRunID = errors.New("run ID is reserved for the run index")

// noExpiry is the index score of results stored without TTL (2100-01-01).
const noExpiry = 4102444800

// Store implements ports.ResultStore using Redis.
// Results are JSON strings; a sorted set indexes run IDs by expiry time.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL sets the expiration for stored results.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored results.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock overrides the clock used to score the index.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(runID string) string {
	return s.prefix + runID
}

func (s *Store) indexKey() string {
	return s.prefix + IndexID
}

// Save persists the result to Redis.
func (s *Store) Save(ctx context.Context, runID string, result *domain.Result) error {
	if runID == IndexID {
		return fmt.Errorf("%w: %q", ErrReservedRunID, runID)
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	score := float64(noExpiry)
	if s.ttl > 0 {
		score = float64(s.now().Add(s.ttl).Unix())
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(runID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: runID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the result from Redis.
func (s *Store) Load(ctx context.Context, runID string) (*domain.Result, error) {
	if runID == IndexID {
		return nil, domain.ErrRunNotFound
	}
	val, err := s.client.Get(ctx, s.key(runID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var result domain.Result
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}

// Delete removes the result and its index entry.
func (s *Store) Delete(ctx context.Context, runID string) error {
	if runID == IndexID {
		return nil
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(runID))
	pipe.ZRem(ctx, s.indexKey(), runID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns the stored run IDs, pruning index entries whose results expired.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := strconv.FormatInt(s.now().Unix(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+now).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired runs: %w", err)
	}

	runs, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
