// README: Batch rate run input sheets, output rows and persisted records.
package batch

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"freight/internal/types"
)

var (
	ErrRateColumnsNotDetected = errors.New("rate columns not detected")
	ErrAmbiguousRateColumns   = errors.New("rate columns ambiguous without headers")
)

// Sentinel values written to the Nearest Hub column of a failed row.
const (
	DestinationNotFound = "Destination not found"
	NoValidHub          = "No valid hub found"
	AnchorNotFound      = "Anchor not found"
	HubOnAnchor         = "Hub coincides with anchor"
)

// Column names read from the input sheets.
const (
	colHubName  = "Destination"
	colState    = "State"
	colDestName = "New Destination"
)

// Row maps a header to its cell. Cells are strings from spreadsheets and may
// be numbers when a sheet arrives as JSON.
type Row map[string]any

// Sheet is one tabular input. Headers keeps column order; when empty the
// keys of the first row are used, sorted, and carry no column order.
type Sheet struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// headers returns the column names and whether they reflect the sheet's
// column order.
func (s Sheet) headers() ([]string, bool) {
	if len(s.Headers) > 0 || len(s.Rows) == 0 {
		return s.Headers, true
	}
	out := make([]string, 0, len(s.Rows[0]))
	for k := range s.Rows[0] {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, false
}

// text renders a cell as a string; missing cells are "".
func (r Row) text(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// OutputRow is one line of the result table, rounded for presentation.
type OutputRow struct {
	Destination string `json:"newDestination"`
	NearestHub  string `json:"nearestHub"`
	DistanceKm  int64  `json:"distanceKm"`
	Tyre10Rate  int64  `json:"tyre10Rate"`
	Tyre12Rate  int64  `json:"tyre12Rate"`
	Tyre14Rate  int64  `json:"tyre14Rate"`
}

// Priced reports whether the row carries computed rates rather than a
// failure sentinel.
func (r OutputRow) Priced() bool {
	switch r.NearestHub {
	case DestinationNotFound, NoValidHub, AnchorNotFound, HubOnAnchor:
		return false
	}
	return true
}

type Result struct {
	RunID string      `json:"runId"`
	Rows  []OutputRow `json:"rows"`
}

// Record is the persisted form of a successfully priced destination row.
type Record struct {
	RunID        string
	Destination  string
	State        string
	NearestHub   string
	DistanceKm   float64
	BaseRates    types.TyreRates
	Rates        types.TyreRates
	DestPosition types.Coordinate
	HubPosition  types.Coordinate
	CreatedAt    time.Time
}
