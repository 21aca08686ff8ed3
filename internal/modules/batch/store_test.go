package batch

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"freight/internal/infra/dbtest"
	"freight/internal/types"
)

func TestStore_CreateIsAppendOnly(t *testing.T) {
	s := NewStore(dbtest.Open(t, "batch_rates"))
	ctx := context.Background()
	runID := uuid.NewString()

	r := &Record{
		RunID: runID, Destination: "Sehore", State: "Madhya Pradesh", NearestHub: "Bhopal",
		DistanceKm: 30,
		BaseRates:  types.TyreRates{Tyre10: 100, Tyre12: 150, Tyre14: 200},
		Rates:      types.TyreRates{Tyre10: 160, Tyre12: 240, Tyre14: 320},
		CreatedAt:  time.Now().UTC(),
	}
	for i := 0; i < 2; i++ {
		if err := s.Create(ctx, r); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	n, err := s.CountRun(ctx, runID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
