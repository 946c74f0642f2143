package trade

import (
	"context"
	"fmt"
	"time"
)

// Counter names and number prefixes
const (
	SequenceOrder   = "order"
	SequencePackage = "package"

	PrefixOrder   = "ORD"
	PrefixPackage = "PKG"
)

// SequenceRepository hands out values from named atomic counters
type SequenceRepository interface {
	// Next increments the named counter and returns the new value.
	// Concurrent callers never receive the same value.
	Next(ctx context.Context, name string) (int64, error)
}

// FormatNumber renders a display number as prefix, unix milliseconds, then the
// counter value padded to at least three digits
func FormatNumber(prefix string, at time.Time, seq int64) string {
	return fmt.Sprintf("%s%d%03d", prefix, at.UnixMilli(), seq)
}
