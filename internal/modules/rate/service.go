// README: Single destination lookup: exact hub at cost, else nearest hub interpolated from the anchor.
package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"freight/internal/metrics"
	"freight/internal/modules/hub"
	"freight/internal/modules/location"
	"freight/internal/modules/pricing"
	"freight/internal/types"
)

type Resolver interface {
	Resolve(ctx context.Context, place string) (types.Coordinate, error)
	Lookup(ctx context.Context, place string) (location.Match, error)
}

type HubIndex interface {
	FindExact(state, city string) (hub.Hub, bool)
	Nearest(point types.Coordinate) (hub.Hub, float64, error)
}

type RecordStore interface {
	Upsert(ctx context.Context, r *Record) error
	Get(ctx context.Context, state, city string) (*Record, error)
}

type Service struct {
	resolver Resolver
	hubs     HubIndex
	store    RecordStore
	anchor   string
	logger   *zap.Logger
}

// NewService wires a lookup service. anchor is the place string of the
// rate-card origin; store may be nil.
func NewService(resolver Resolver, hubs HubIndex, store RecordStore, anchor string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{resolver: resolver, hubs: hubs, store: store, anchor: anchor, logger: logger}
}

// Lookup computes and stores the rate for (state, city). When only the
// write fails the computed record is returned along with an error wrapping
// ErrPersistence.
func (s *Service) Lookup(ctx context.Context, state, city string) (*Record, error) {
	state, city = hub.Normalize(state), hub.Normalize(city)
	if state == "" || city == "" {
		return nil, ErrInvalidRequest
	}

	rec, err := s.compute(ctx, state, city)
	if err != nil {
		metrics.LookupsTotal.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}
	metrics.LookupsTotal.WithLabelValues("ok").Inc()

	if s.store == nil {
		return rec, nil
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		metrics.PersistFailTotal.WithLabelValues("location_rate").Inc()
		s.logger.Error("persist rate record failed",
			zap.String("state", state), zap.String("city", city), zap.Error(err))
		return rec, fmt.Errorf("%w: %s/%s: %v", ErrPersistence, state, city, err)
	}
	return rec, nil
}

// Get returns a previously stored record.
func (s *Service) Get(ctx context.Context, state, city string) (*Record, error) {
	state, city = hub.Normalize(state), hub.Normalize(city)
	if state == "" || city == "" {
		return nil, ErrInvalidRequest
	}
	if s.store == nil {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, state, city)
}

func (s *Service) compute(ctx context.Context, state, city string) (*Record, error) {
	match, err := s.resolver.Lookup(ctx, fmt.Sprintf("%s, %s, India", city, state))
	if err != nil {
		return nil, err
	}

	rec := &Record{
		State:     state,
		City:      city,
		Pincode:   match.Postcode,
		Position:  match.Position,
		UpdatedAt: time.Now().UTC(),
	}

	if h, ok := s.hubs.FindExact(state, city); ok {
		rec.BaseRates = h.Rates
		rec.Rates = h.Rates
		rec.NearestHub = h.Name()
		return rec, nil
	}

	h, km, err := s.hubs.Nearest(match.Position)
	if err != nil {
		return nil, err
	}
	anchor, err := s.resolver.Resolve(ctx, s.anchor)
	if err != nil {
		s.logger.Error("anchor resolve failed", zap.String("anchor", s.anchor), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAnchorUnavailable, err)
	}
	rates, err := pricing.InterpolateRates(h.Rates, location.Distance(anchor, h.Position), km)
	if err != nil {
		return nil, fmt.Errorf("hub %s: %w", h.Name(), err)
	}

	rec.BaseRates = h.Rates
	rec.Rates = rates
	rec.DistanceKm = km
	rec.NearestHub = h.Name()
	s.logger.Debug("rate interpolated",
		zap.String("city", city), zap.String("hub", h.Name()), zap.Float64("distance_km", km))
	return rec, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, location.ErrGeoNotFound):
		return "not_found"
	case errors.Is(err, location.ErrGeoTransport):
		return "geo_transport"
	case errors.Is(err, hub.ErrNoHubsAvailable):
		return "no_hubs"
	case errors.Is(err, pricing.ErrDegenerateDistance):
		return "degenerate"
	case errors.Is(err, ErrAnchorUnavailable):
		return "anchor"
	default:
		return "error"
	}
}
