// README: Batch engine pricing a destination sheet against a hub sheet, one row at a time.
package batch

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight/internal/metrics"
	"freight/internal/modules/location"
	"freight/internal/modules/pricing"
	"freight/internal/types"
)

type Resolver interface {
	Resolve(ctx context.Context, place string) (types.Coordinate, error)
}

type RecordStore interface {
	Create(ctx context.Context, r *Record) error
}

type Engine struct {
	resolver     Resolver
	store        RecordStore
	anchorPlace  string
	defaultState string
	logger       *zap.Logger
}

// NewEngine builds an engine. defaultState fills destination rows with no
// State cell; store may be nil.
func NewEngine(resolver Resolver, store RecordStore, anchorPlace, defaultState string, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		resolver:     resolver,
		store:        store,
		anchorPlace:  anchorPlace,
		defaultState: defaultState,
		logger:       logger,
	}
}

// sheetHub is a hub row of the current run only.
type sheetHub struct {
	name  string
	state string
	rates types.TyreRates
}

// Run prices every destination row in order. Row failures become sentinel
// rows; only an undetectable hub schema or a cancelled context fails the run.
func (e *Engine) Run(ctx context.Context, hubs, destinations Sheet) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), Rows: []OutputRow{}}
	log := e.logger.With(zap.String("run_id", res.RunID))

	if len(hubs.Rows) == 0 {
		log.Warn("no hubs in batch input")
		return res, nil
	}

	headers, ordered := hubs.headers()
	cols, err := detectRateColumns(headers)
	if err != nil {
		return nil, err
	}
	if !ordered {
		if err := requireUniqueRateColumns(headers); err != nil {
			return nil, err
		}
	}
	table := e.hubTable(hubs.Rows, cols, log)
	log.Info("batch started", zap.Int("hubs", len(table)), zap.Int("destinations", len(destinations.Rows)))

	for _, row := range destinations.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := e.priceRow(ctx, res.RunID, row, table, log)
		res.Rows = append(res.Rows, out)
	}
	log.Info("batch finished", zap.Int("rows", len(res.Rows)))
	return res, nil
}

// hubTable keeps first-seen order; a repeated name overwrites the earlier
// state and rates in place.
func (e *Engine) hubTable(rows []Row, cols map[int]string, log *zap.Logger) []sheetHub {
	var table []sheetHub
	pos := make(map[string]int)
	for i, row := range rows {
		name := strings.TrimSpace(row.text(colHubName))
		if name == "" {
			log.Warn("hub row without name skipped", zap.Int("row", i+2))
			continue
		}
		h := sheetHub{name: name, state: strings.TrimSpace(row.text(colState))}
		for _, size := range types.TyreSizes {
			h.rates.Set(size, parseCellNumber(row[cols[size]]))
		}
		if j, ok := pos[name]; ok {
			table[j] = h
			continue
		}
		pos[name] = len(table)
		table = append(table, h)
	}
	return table
}

func (e *Engine) priceRow(ctx context.Context, runID string, row Row, table []sheetHub, log *zap.Logger) OutputRow {
	name := strings.TrimSpace(row.text(colDestName))
	state := strings.TrimSpace(row.text(colState))
	if state == "" {
		state = e.defaultState
	}
	if name == "" {
		return failedRow(name, DestinationNotFound)
	}

	dest, err := e.resolver.Resolve(ctx, fmt.Sprintf("%s, %s, India", name, state))
	if err != nil {
		log.Warn("destination not found", zap.String("destination", name), zap.Error(err))
		return failedRow(name, DestinationNotFound)
	}

	anchor, err := e.resolver.Resolve(ctx, e.anchorPlace)
	if err != nil {
		log.Error("anchor not resolved", zap.String("anchor", e.anchorPlace), zap.Error(err))
		return failedRow(name, AnchorNotFound)
	}

	var (
		nearest *sheetHub
		hubPos  types.Coordinate
		bestKm  = math.Inf(1)
	)
	for i := range table {
		h := &table[i]
		pos, err := e.resolver.Resolve(ctx, fmt.Sprintf("%s, %s, India", h.name, h.state))
		if err != nil {
			log.Warn("hub not geocoded, skipping", zap.String("hub", h.name), zap.Error(err))
			continue
		}
		if d := location.Distance(dest, pos); d < bestKm {
			nearest, hubPos, bestKm = h, pos, d
		}
	}
	if nearest == nil {
		log.Warn("no valid hub for destination", zap.String("destination", name))
		return failedRow(name, NoValidHub)
	}

	rates, err := pricing.InterpolateRates(nearest.rates, location.Distance(anchor, hubPos), bestKm)
	if err != nil {
		log.Warn("hub coincides with anchor", zap.String("hub", nearest.name), zap.Error(err))
		return failedRow(name, HubOnAnchor)
	}

	e.persist(ctx, &Record{
		RunID:        runID,
		Destination:  name,
		State:        state,
		NearestHub:   nearest.name,
		DistanceKm:   bestKm,
		BaseRates:    nearest.rates,
		Rates:        rates,
		DestPosition: dest,
		HubPosition:  hubPos,
		CreatedAt:    time.Now().UTC(),
	}, log)

	metrics.BatchRowsTotal.WithLabelValues("ok").Inc()
	return OutputRow{
		Destination: name,
		NearestHub:  nearest.name,
		DistanceKm:  pricing.Round(bestKm),
		Tyre10Rate:  pricing.Round(rates.Tyre10),
		Tyre12Rate:  pricing.Round(rates.Tyre12),
		Tyre14Rate:  pricing.Round(rates.Tyre14),
	}
}

func (e *Engine) persist(ctx context.Context, r *Record, log *zap.Logger) {
	if e.store == nil {
		return
	}
	if err := e.store.Create(ctx, r); err != nil {
		metrics.PersistFailTotal.WithLabelValues("batch_rate").Inc()
		log.Error("persist batch row failed", zap.String("destination", r.Destination), zap.Error(err))
	}
}

func failedRow(name, reason string) OutputRow {
	metrics.BatchRowsTotal.WithLabelValues("failed").Inc()
	return OutputRow{Destination: name, NearestHub: reason}
}
