package numerator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	corenumerator "github.com/xinnxz/sim4lon-sub000/internal/core/numerator"
)

func TestFormatNumber(t *testing.T) {
	period := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		cfg  corenumerator.Config
		num  int64
		want string
	}{
		{"order code", corenumerator.DefaultConfig("ORD"), 1, "ORD-2026-00001"},
		{"sale code", corenumerator.DefaultConfig("TRX"), 123, "TRX-2026-00123"},
		{"opname code", corenumerator.DefaultConfig("OPN"), 99999, "OPN-2026-99999"},
		{"overflow keeps digits", corenumerator.DefaultConfig("ORD"), 123456, "ORD-2026-123456"},
		{"no year", corenumerator.Config{Prefix: "DOC", PadWidth: 3}, 7, "DOC-007"},
		{"zero pad width defaults to five", corenumerator.Config{Prefix: "X", IncludeYear: true}, 42, "X-2026-00042"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatNumber(tc.cfg, period, tc.num))
		})
	}
}
