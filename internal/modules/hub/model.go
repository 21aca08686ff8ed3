// README: Hub aggregate, registration input and identity rules.
package hub

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/types"
)

var (
	ErrNoHubsAvailable = errors.New("no hubs available")
	ErrInvalidHub      = errors.New("invalid hub")
	ErrPersistence     = errors.New("hub persistence failed")
)

// Hub is a rate-card origin. Hubs are never mutated once created.
type Hub struct {
	ID        types.ID         `json:"id"`
	State     string           `json:"state"`
	City      string           `json:"city"`
	Pincode   string           `json:"pincode,omitempty"`
	Rates     types.TyreRates  `json:"rates"`
	Position  types.Coordinate `json:"position"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Name is the identifier reported as the nearest hub on rate records.
func (h Hub) Name() string { return h.City }

// Candidate is a registration request before geocoding.
type Candidate struct {
	State   string
	City    string
	Pincode string
	Rates   types.TyreRates
}

// RegisterResult carries either the new hub (Created) or the hub that
// already held the identity.
type RegisterResult struct {
	Hub     Hub
	Created bool
}

// Normalize trims and lower-cases a state or city name.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (c Candidate) normalized() Candidate {
	c.State = Normalize(c.State)
	c.City = Normalize(c.City)
	c.Pincode = strings.TrimSpace(c.Pincode)
	return c
}

func (c Candidate) validate() error {
	if c.State == "" || c.City == "" {
		return fmt.Errorf("%w: state and city are required", ErrInvalidHub)
	}
	if !c.Rates.Positive() {
		return fmt.Errorf("%w: tyre rates must be positive", ErrInvalidHub)
	}
	return nil
}

// geocodeQuery expects a normalized candidate.
func (c Candidate) geocodeQuery() string {
	if c.Pincode != "" {
		return fmt.Sprintf("%s, %s, %s, India", c.City, c.Pincode, c.State)
	}
	return fmt.Sprintf("%s, %s, India", c.City, c.State)
}

// duplicates reports whether c would re-register h. A differing pincode
// is a distinct hub; no pincode at all matches any hub in the same city.
func (c Candidate) duplicates(h Hub) bool {
	if c.State != h.State || c.City != h.City {
		return false
	}
	return c.Pincode == "" || c.Pincode == h.Pincode
}
