package hub

import (
	"context"
	"testing"
	"time"

	"freight/internal/infra/dbtest"
	"freight/internal/types"
)

func TestStore_InsertAndList(t *testing.T) {
	s := NewStore(dbtest.Open(t, "hubs"))
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	hubs := []Hub{
		{ID: "6f1d3f0e-8c55-4a59-9d3e-3b9f0f2f8a01", State: "madhya pradesh", City: "bhopal",
			Rates: rates, Position: types.Coordinate{Lat: 23.2599, Lon: 77.4126}, CreatedAt: base},
		{ID: "6f1d3f0e-8c55-4a59-9d3e-3b9f0f2f8a02", State: "madhya pradesh", City: "bhopal", Pincode: "462026",
			Rates: rates, Position: types.Coordinate{Lat: 23.21, Lon: 77.44}, CreatedAt: base.Add(time.Second)},
	}
	for _, h := range hubs {
		if err := s.Insert(ctx, h); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := s.Insert(ctx, Hub{ID: "6f1d3f0e-8c55-4a59-9d3e-3b9f0f2f8a03", State: "madhya pradesh", City: "bhopal", Rates: rates, CreatedAt: base}); err == nil {
		t.Fatal("expected unique violation for duplicate identity")
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != hubs[0].ID || got[1].Pincode != "462026" {
		t.Errorf("order/content mismatch: %+v", got)
	}
}
