// Package numerator provides domain contracts for document auto-numbering.
package numerator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// MockGenerator is a test implementation of Generator.
// Use in unit tests to avoid database dependencies.
type MockGenerator struct {
	NextCodeFunc func(ctx context.Context, cfg Config, period time.Time) (string, error)

	counter int64
}

// NextCode implements Generator.
func (m *MockGenerator) NextCode(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if m.NextCodeFunc != nil {
		return m.NextCodeFunc(ctx, cfg, period)
	}
	// Default: predictable sequential mock codes
	n := atomic.AddInt64(&m.counter, 1)
	return fmt.Sprintf("%s-%d-%05d", cfg.Prefix, period.Year(), n), nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
