// README: Rate interpolation errors.
package pricing

import "errors"

// ErrDegenerateDistance is returned when the hub sits on the anchor, which
// leaves the per-km scale undefined.
var ErrDegenerateDistance = errors.New("anchor to hub distance is zero")
