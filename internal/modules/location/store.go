// README: Shared geocode cache backed by Redis string keys (write-once via SET NX).
package location

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:place:"

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore returns a SharedCache. ttl of zero keeps entries until evicted by Redis.
func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, place string) (Match, bool, error) {
	val, err := s.redis.Get(ctx, geocodeKey(place)).Bytes()
	if err == redis.Nil {
		return Match{}, false, nil
	}
	if err != nil {
		return Match{}, false, err
	}
	var m Match
	if err := json.Unmarshal(val, &m); err != nil {
		return Match{}, false, err
	}
	return m, true, nil
}

func (s *Store) Put(ctx context.Context, place string, m Match) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.redis.SetNX(ctx, geocodeKey(place), b, s.ttl).Err()
}

func geocodeKey(place string) string {
	return geocodeKeyPrefix + place
}
