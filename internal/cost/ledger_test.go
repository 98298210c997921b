package cost

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureHandler collects emitted records so tests can count threshold
// crossings without parsing log output.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

func TestLedger(t *testing.T) {
	t.Run("accumulates cost from token counts", func(t *testing.T) {
		ledger := NewLedger(0.15, slog.New(&captureHandler{}))

		ledger.Record(1_000_000)
		ledger.Record(2_000_000)

		assert.InDelta(t, 0.45, ledger.Total(), 1e-9)
		assert.Equal(t, 2, ledger.Calls())
	})

	t.Run("emits one diagnostic per whole-unit crossing", func(t *testing.T) {
		handler := &captureHandler{}
		ledger := NewLedger(1.0, slog.New(handler))

		// 0.6 then 1.1: crosses 1.0 once.
		ledger.Record(600_000)
		require.Equal(t, 0, handler.count())
		ledger.Record(500_000)
		require.Equal(t, 1, handler.count())

		// Climb to 2.3: crosses 2.0, second diagnostic.
		ledger.Record(1_200_000)
		assert.Equal(t, 2, handler.count())
		assert.InDelta(t, 2.3, ledger.Total(), 1e-9)
	})

	t.Run("single call crossing multiple units logs each", func(t *testing.T) {
		handler := &captureHandler{}
		ledger := NewLedger(1.0, slog.New(handler))

		// 3.5 units in one call: thresholds 1.0, 2.0, 3.0.
		ledger.Record(3_500_000)
		assert.Equal(t, 3, handler.count())
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		ledger := NewLedger(1.0, nil)
		ledger.Record(100)
		assert.Positive(t, ledger.Total())
	})
}
