// README: Hub store backed by PostgreSQL.
package hub

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"freight/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, h Hub) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO hubs (
            id, state, city, pincode,
            tyre10_rate, tyre12_rate, tyre14_rate,
            lat, lon, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		string(h.ID), h.State, h.City, h.Pincode,
		h.Rates.Tyre10, h.Rates.Tyre12, h.Rates.Tyre14,
		h.Position.Lat, h.Position.Lon, h.CreatedAt,
	)
	return err
}

// List returns hubs in registration order.
func (s *Store) List(ctx context.Context) ([]Hub, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id::text, state, city, pincode,
               tyre10_rate, tyre12_rate, tyre14_rate,
               lat, lon, created_at
        FROM hubs
        ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Hub
	for rows.Next() {
		var h Hub
		var id string
		if err := rows.Scan(
			&id, &h.State, &h.City, &h.Pincode,
			&h.Rates.Tyre10, &h.Rates.Tyre12, &h.Rates.Tyre14,
			&h.Position.Lat, &h.Position.Lon, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		h.ID = types.ID(id)
		out = append(out, h)
	}
	return out, rows.Err()
}
