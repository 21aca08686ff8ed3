// README: Nominatim (OpenStreetMap) search client implementing Geocoder.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"freight/internal/types"
)

// NominatimGeocoder queries the /search endpoint for the single best match.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

type nominatimPlace struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// NewNominatimGeocoder builds a client. userAgent identifies this service to the
// upstream, which rejects anonymous traffic. A nil client gets a 30s default.
func NewNominatimGeocoder(baseURL, userAgent string, client *http.Client) *NominatimGeocoder {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &NominatimGeocoder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    client,
	}
}

func (g *NominatimGeocoder) Name() string { return "nominatim" }

func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (Match, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return Match{}, fmt.Errorf("%w: build request: %v", ErrGeoTransport, err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %v", ErrGeoTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Match{}, fmt.Errorf("%w: nominatim status %d", ErrGeoTransport, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Match{}, fmt.Errorf("%w: decode response: %v", ErrGeoTransport, err)
	}
	if len(places) == 0 {
		return Match{}, ErrGeoNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Match{}, fmt.Errorf("%w: bad lat %q", ErrGeoTransport, places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Match{}, fmt.Errorf("%w: bad lon %q", ErrGeoTransport, places[0].Lon)
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Match{}, fmt.Errorf("%w: non-finite position %q,%q", ErrGeoTransport, places[0].Lat, places[0].Lon)
	}
	return Match{
		Position: types.Coordinate{Lat: lat, Lon: lon},
		Postcode: strings.TrimSpace(places[0].Address.Postcode),
	}, nil
}
