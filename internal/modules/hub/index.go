// README: In-memory hub index with nearest-hub search, persisted through a Store.
package hub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight/internal/modules/location"
	"freight/internal/types"
)

type Resolver interface {
	Resolve(ctx context.Context, place string) (types.Coordinate, error)
}

type HubStore interface {
	Insert(ctx context.Context, h Hub) error
	List(ctx context.Context) ([]Hub, error)
}

// Index holds every registered hub in insertion order. It only grows.
type Index struct {
	resolver Resolver
	store    HubStore
	logger   *zap.Logger

	mu   sync.RWMutex
	hubs []Hub
}

// NewIndex returns an empty index. store may be nil for a memory-only index.
func NewIndex(resolver Resolver, store HubStore, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{resolver: resolver, store: store, logger: logger}
}

// Load replaces the in-memory hubs with the persisted ones.
func (ix *Index) Load(ctx context.Context) error {
	if ix.store == nil {
		return nil
	}
	hubs, err := ix.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load hubs: %w", err)
	}
	ix.mu.Lock()
	ix.hubs = hubs
	ix.mu.Unlock()
	ix.logger.Info("hubs loaded", zap.Int("count", len(hubs)))
	return nil
}

func (ix *Index) Register(ctx context.Context, c Candidate) (RegisterResult, error) {
	c = c.normalized()
	if err := c.validate(); err != nil {
		return RegisterResult{}, err
	}

	if existing, ok := ix.findDuplicate(c); ok {
		return RegisterResult{Hub: existing}, nil
	}

	pos, err := ix.resolver.Resolve(ctx, c.geocodeQuery())
	if err != nil {
		return RegisterResult{}, err
	}

	h := Hub{
		ID:        types.ID(uuid.NewString()),
		State:     c.State,
		City:      c.City,
		Pincode:   c.Pincode,
		Rates:     c.Rates,
		Position:  pos,
		CreatedAt: time.Now().UTC(),
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	// Another registration may have inserted the identity while we geocoded.
	for _, existing := range ix.hubs {
		if c.duplicates(existing) {
			return RegisterResult{Hub: existing}, nil
		}
	}
	if ix.store != nil {
		if err := ix.store.Insert(ctx, h); err != nil {
			return RegisterResult{}, fmt.Errorf("%w: %s/%s: %v", ErrPersistence, h.State, h.City, err)
		}
	}
	ix.hubs = append(ix.hubs, h)
	ix.logger.Info("hub registered",
		zap.String("id", string(h.ID)), zap.String("state", h.State),
		zap.String("city", h.City), zap.String("pincode", h.Pincode))
	return RegisterResult{Hub: h, Created: true}, nil
}

// Nearest returns the hub closest to point and its distance in km. Ties go
// to the earliest registered hub.
func (ix *Index) Nearest(point types.Coordinate) (Hub, float64, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.hubs) == 0 {
		return Hub{}, 0, ErrNoHubsAvailable
	}
	best := 0
	bestKm := location.Distance(point, ix.hubs[0].Position)
	for i := 1; i < len(ix.hubs); i++ {
		if d := location.Distance(point, ix.hubs[i].Position); d < bestKm {
			best, bestKm = i, d
		}
	}
	return ix.hubs[best], bestKm, nil
}

// FindExact returns the first hub registered for (state, city), compared
// case-insensitively.
func (ix *Index) FindExact(state, city string) (Hub, bool) {
	state, city = Normalize(state), Normalize(city)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, h := range ix.hubs {
		if h.State == state && h.City == city {
			return h, true
		}
	}
	return Hub{}, false
}

func (ix *Index) List() []Hub {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Hub, len(ix.hubs))
	copy(out, ix.hubs)
	return out
}

func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.hubs)
}

func (ix *Index) findDuplicate(c Candidate) (Hub, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, h := range ix.hubs {
		if c.duplicates(h) {
			return h, true
		}
	}
	return Hub{}, false
}
