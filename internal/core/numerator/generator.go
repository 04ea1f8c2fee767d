// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in infrastructure layer.
package numerator

import (
	"context"
	"time"
)

// Generator generates sequential document codes.
// This is the domain contract - implementations live in infrastructure layer.
type Generator interface {
	// NextCode generates the next document code.
	// Pattern: PREFIX-YEAR-XXXXX (e.g., ORD-2026-00001)
	//
	// The allocation joins the caller's transaction when one is active, so a
	// rolled-back document never burns a visible code out of order relative
	// to committed ones.
	NextCode(ctx context.Context, cfg Config, period time.Time) (string, error)
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all codes (e.g., "ORD", "TRX", "OPN")
	Prefix string

	// IncludeYear adds year to the code
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
	}
}
