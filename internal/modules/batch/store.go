// README: Append-only batch rate store backed by PostgreSQL.
package batch

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, r *Record) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO batch_rates (
            run_id, destination, state, nearest_hub, distance_km,
            base_tyre10_rate, base_tyre12_rate, base_tyre14_rate,
            tyre10_rate, tyre12_rate, tyre14_rate,
            dest_lat, dest_lon, hub_lat, hub_lon, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		r.RunID, r.Destination, r.State, r.NearestHub, r.DistanceKm,
		r.BaseRates.Tyre10, r.BaseRates.Tyre12, r.BaseRates.Tyre14,
		r.Rates.Tyre10, r.Rates.Tyre12, r.Rates.Tyre14,
		r.DestPosition.Lat, r.DestPosition.Lon, r.HubPosition.Lat, r.HubPosition.Lon,
		r.CreatedAt,
	)
	return err
}

// CountRun returns how many rows a run persisted.
func (s *Store) CountRun(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM batch_rates WHERE run_id = $1`, runID).Scan(&n)
	return n, err
}
