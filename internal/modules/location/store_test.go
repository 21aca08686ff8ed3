package location

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"freight/internal/types"
)

func TestStore_WriteOnce(t *testing.T) {
	redisAddr := os.Getenv("FREIGHT_REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("FREIGHT_REDIS_ADDR not set; skipping integration test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	store := NewStore(rdb, time.Minute)
	ctx := context.Background()
	place := fmt.Sprintf("test-place-%d, India", time.Now().UnixNano())
	defer rdb.Del(ctx, geocodeKey(place))

	if _, hit, err := store.Get(ctx, place); err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}

	first := Match{Position: types.Coordinate{Lat: 1, Lon: 2}, Postcode: "111111"}
	if err := store.Put(ctx, place, first); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, place, Match{Position: types.Coordinate{Lat: 9, Lon: 9}}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, hit, err := store.Get(ctx, place)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if got != first {
		t.Errorf("entry was overwritten: %v", got)
	}
}
