// Package numerator provides the PostgreSQL implementation of document
// auto-numbering. It implements core/numerator.Generator.
package numerator

import (
	"context"
	"fmt"
	"time"

	corenumerator "github.com/xinnxz/sim4lon-sub000/internal/core/numerator"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

// Service allocates document numbers from sys_sequences with an
// UPSERT + RETURNING, so concurrent allocations for the same prefix never
// collide. The allocation runs on the ambient transaction's connection when
// one is active: a rolled-back document rolls its number back with it.
type Service struct {
	txm *postgres.TxManager
}

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

// New creates a new numerator service.
func New(txm *postgres.TxManager) *Service {
	return &Service{txm: txm}
}

// NextCode generates the next document code.
// Pattern: PREFIX-YEAR-XXXXX (e.g., ORD-2026-00001).
func (s *Service) NextCode(ctx context.Context, cfg corenumerator.Config, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if period.IsZero() {
		period = time.Now().UTC()
	}

	var num int64
	err := s.txm.GetQuerier(ctx).QueryRow(ctx, `
        INSERT INTO sys_sequences (sequence_type, year, current_val)
        VALUES ($1, $2, 1)
        ON CONFLICT (sequence_type, year) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, cfg.Prefix, period.Year()).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next sequence value: %w", err)
	}

	return formatNumber(cfg, period, num), nil
}

// formatNumber creates the final code string.
func formatNumber(cfg corenumerator.Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}
