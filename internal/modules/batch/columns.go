// README: Fuzzy rate-column detection and lenient numeric cell parsing.
package batch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"freight/internal/types"
)

const freightRateToken = "freightrate"

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)
	nonNumeric      = regexp.MustCompile(`[^\d.-]`)
	leadingNumber   = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

func normalizeHeader(h string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(h), "")
}

// detectRateColumns maps each tyre size to the first header mentioning both
// the freight rate token and the size digits.
func detectRateColumns(headers []string) (map[int]string, error) {
	cols := make(map[int]string, len(types.TyreSizes))
	for _, size := range types.TyreSizes {
		digits := strconv.Itoa(size)
		for _, h := range headers {
			n := normalizeHeader(h)
			if strings.Contains(n, freightRateToken) && strings.Contains(n, digits) {
				cols[size] = h
				break
			}
		}
		if _, ok := cols[size]; !ok {
			return nil, fmt.Errorf("%w; headers: %s", ErrRateColumnsNotDetected, strings.Join(headers, ", "))
		}
	}
	return cols, nil
}

// parseCellNumber keeps digits, '.' and '-' and reads the leading number.
// Anything unreadable is 0.
func parseCellNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		m := leadingNumber.FindString(nonNumeric.ReplaceAllString(n, ""))
		if m == "" {
			return 0
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// requireUniqueRateColumns rejects header sets where a tyre size matches more
// than one column, for sheets whose column order is unknown.
func requireUniqueRateColumns(headers []string) error {
	for _, size := range types.TyreSizes {
		digits := strconv.Itoa(size)
		var matches []string
		for _, h := range headers {
			n := normalizeHeader(h)
			if strings.Contains(n, freightRateToken) && strings.Contains(n, digits) {
				matches = append(matches, h)
			}
		}
		if len(matches) > 1 {
			return fmt.Errorf("%w: %d tyre rate matches %s; send headers in column order",
				ErrAmbiguousRateColumns, size, strings.Join(matches, ", "))
		}
	}
	return nil
}
