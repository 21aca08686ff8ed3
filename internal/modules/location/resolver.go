// README: Resolver memoizes geocoder results per exact place string, with an optional shared tier.
package location

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"freight/internal/metrics"
	"freight/internal/types"
)

// SharedCache is a cross-process cache tier consulted after the in-memory miss.
// Put must not overwrite an existing key.
type SharedCache interface {
	Get(ctx context.Context, place string) (Match, bool, error)
	Put(ctx context.Context, place string, m Match) error
}

// Resolver turns place strings into coordinates. The cache is keyed by the
// exact input; callers normalize before calling. Only successes are cached, and
// the first success for a key is kept for the life of the Resolver.
type Resolver struct {
	geocoder Geocoder
	shared   SharedCache
	timeout  time.Duration
	logger   *zap.Logger

	mu    sync.RWMutex
	cache map[string]Match
}

func NewResolver(geocoder Geocoder, timeout time.Duration, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		geocoder: geocoder,
		timeout:  timeout,
		logger:   logger,
		cache:    make(map[string]Match),
	}
}

// UseSharedCache attaches a second cache tier. Call before serving traffic.
func (r *Resolver) UseSharedCache(c SharedCache) {
	r.shared = c
}

// Resolve returns the coordinate for place.
func (r *Resolver) Resolve(ctx context.Context, place string) (types.Coordinate, error) {
	m, err := r.Lookup(ctx, place)
	if err != nil {
		return types.Coordinate{}, err
	}
	return m.Position, nil
}

// Lookup returns the full match for place, including the postcode when the
// provider reported one.
func (r *Resolver) Lookup(ctx context.Context, place string) (Match, error) {
	r.mu.RLock()
	m, ok := r.cache[place]
	r.mu.RUnlock()
	if ok {
		metrics.GeocodeCacheHitsTotal.WithLabelValues("memory").Inc()
		return m, nil
	}

	if r.shared != nil {
		sm, hit, err := r.shared.Get(ctx, place)
		if err != nil {
			r.logger.Warn("shared geocode cache read failed", zap.String("place", place), zap.Error(err))
		} else if hit {
			metrics.GeocodeCacheHitsTotal.WithLabelValues("shared").Inc()
			return r.remember(place, sm), nil
		}
	}

	m, err := r.geocode(ctx, place)
	if err != nil {
		return Match{}, err
	}
	m = r.remember(place, m)

	if r.shared != nil {
		if err := r.shared.Put(ctx, place, m); err != nil {
			r.logger.Warn("shared geocode cache write failed", zap.String("place", place), zap.Error(err))
		}
	}
	return m, nil
}

// ClearCache drops every in-memory entry. The shared tier is left untouched.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	r.cache = make(map[string]Match)
	r.mu.Unlock()
}

// Cached reports whether place has an in-memory entry.
func (r *Resolver) Cached(place string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.cache[place]
	return ok
}

// remember stores m unless another caller won the race, in which case the
// earlier value is returned.
func (r *Resolver) remember(place string, m Match) Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.cache[place]; ok {
		return prev
	}
	r.cache[place] = m
	return m
}

func (r *Resolver) geocode(ctx context.Context, place string) (Match, error) {
	provider := r.geocoder.Name()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	t0 := time.Now()
	metrics.GeocodeRequestsTotal.WithLabelValues(provider).Inc()
	m, err := r.geocoder.Geocode(ctx, place)
	metrics.GeocodeDurationMs.WithLabelValues(provider).Observe(float64(time.Since(t0).Milliseconds()))
	if err == nil {
		r.logger.Debug("geocoded", zap.String("place", place),
			zap.Float64("lat", m.Position.Lat), zap.Float64("lon", m.Position.Lon))
		return m, nil
	}

	switch {
	case errors.Is(err, ErrGeoNotFound):
		metrics.GeocodeFailTotal.WithLabelValues(provider, "not_found").Inc()
		return Match{}, fmt.Errorf("resolve %q: %w", place, err)
	case errors.Is(err, ErrGeoTransport):
		metrics.GeocodeFailTotal.WithLabelValues(provider, "transport").Inc()
		return Match{}, fmt.Errorf("resolve %q: %w", place, err)
	default:
		metrics.GeocodeFailTotal.WithLabelValues(provider, "transport").Inc()
		return Match{}, fmt.Errorf("resolve %q: %w: %w", place, ErrGeoTransport, err)
	}
}
