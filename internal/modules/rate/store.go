// README: Location rate store backed by PostgreSQL, upserted by (state, city).
package rate

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Upsert(ctx context.Context, r *Record) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO location_rates (
            state, city, pincode, lat, lon,
            base_tyre10_rate, base_tyre12_rate, base_tyre14_rate,
            tyre10_rate, tyre12_rate, tyre14_rate,
            distance_km, nearest_hub, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        ON CONFLICT (state, city) DO UPDATE SET
            pincode = EXCLUDED.pincode,
            lat = EXCLUDED.lat,
            lon = EXCLUDED.lon,
            base_tyre10_rate = EXCLUDED.base_tyre10_rate,
            base_tyre12_rate = EXCLUDED.base_tyre12_rate,
            base_tyre14_rate = EXCLUDED.base_tyre14_rate,
            tyre10_rate = EXCLUDED.tyre10_rate,
            tyre12_rate = EXCLUDED.tyre12_rate,
            tyre14_rate = EXCLUDED.tyre14_rate,
            distance_km = EXCLUDED.distance_km,
            nearest_hub = EXCLUDED.nearest_hub,
            updated_at = EXCLUDED.updated_at`,
		r.State, r.City, r.Pincode, r.Position.Lat, r.Position.Lon,
		r.BaseRates.Tyre10, r.BaseRates.Tyre12, r.BaseRates.Tyre14,
		r.Rates.Tyre10, r.Rates.Tyre12, r.Rates.Tyre14,
		r.DistanceKm, r.NearestHub, r.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, state, city string) (*Record, error) {
	row := s.db.QueryRow(ctx, `
        SELECT state, city, pincode, lat, lon,
               base_tyre10_rate, base_tyre12_rate, base_tyre14_rate,
               tyre10_rate, tyre12_rate, tyre14_rate,
               distance_km, nearest_hub, updated_at
        FROM location_rates
        WHERE state = $1 AND city = $2`, state, city,
	)

	var r Record
	err := row.Scan(
		&r.State, &r.City, &r.Pincode, &r.Position.Lat, &r.Position.Lon,
		&r.BaseRates.Tyre10, &r.BaseRates.Tyre12, &r.BaseRates.Tyre14,
		&r.Rates.Tyre10, &r.Rates.Tyre12, &r.Rates.Tyre14,
		&r.DistanceKm, &r.NearestHub, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
