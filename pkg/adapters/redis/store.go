package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/labyrinth/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// neverExpires scores records kept without a TTL (2100-01-01).
const neverExpires = 4102444800

// Store keeps route records in Redis.
//
// Each record lives under <prefix><route id> as JSON. The sorted set
// <prefix>index holds every route ID scored by its expiry time, so listing
// never scans the keyspace and expired routes drop out of it on the next List.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL expires route records after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix namespaces the record and index keys.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock sets the time source used to score and prune the index.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New connects to the Redis server at address.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient stores route records through an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "labyrinth:route:",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) recordKey(routeID string) string {
	return s.prefix + routeID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// expiry is the index score of a record saved now.
func (s *Store) expiry() float64 {
	if s.ttl <= 0 {
		return neverExpires
	}
	return float64(s.now().Add(s.ttl).Unix())
}

// Save writes the record and indexes its route ID in one pipeline.
// Saving an existing route ID replaces the record and refreshes its expiry.
func (s *Store) Save(ctx context.Context, record *domain.RouteRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode route %s: %w", record.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.recordKey(record.ID), payload, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: s.expiry(), Member: record.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save route %s: %w", record.ID, err)
	}
	return nil
}

// Load reads a route record. Missing and expired routes yield domain.ErrRouteNotFound.
func (s *Store) Load(ctx context.Context, routeID string) (*domain.RouteRecord, error) {
	payload, err := s.client.Get(ctx, s.recordKey(routeID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRouteNotFound, routeID)
	}
	if err != nil {
		return nil, fmt.Errorf("load route %s: %w", routeID, err)
	}

	var record domain.RouteRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("decode route %s: %w", routeID, err)
	}
	return &record, nil
}

// Delete drops the record and its index entry. Unknown IDs are not an error.
func (s *Store) Delete(ctx context.Context, routeID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.recordKey(routeID))
	pipe.ZRem(ctx, s.indexKey(), routeID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete route %s: %w", routeID, err)
	}
	return nil
}

// List returns the IDs of live routes, soonest to expire first.
// Index entries whose records have expired are pruned on the way.
func (s *Store) List(ctx context.Context) ([]string, error) {
	cutoff := fmt.Sprintf("%d", s.now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", cutoff).Err(); err != nil {
		return nil, fmt.Errorf("prune expired routes: %w", err)
	}

	routeIDs, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routeIDs, nil
}

// Close releases the client connection.
func (s *Store) Close() error {
	return s.client.Close()
}
