// Package cost tracks cumulative API spend across classification calls.
package cost

import (
	"log/slog"
	"sync"
)

// Recorder receives per-call token usage. The classifier depends on this
// interface so tests can substitute a fake and assert its final value.
type Recorder interface {
	Record(tokens int)
}

// Ledger is a process-scoped running total of spend. It is purely
// observational: it never blocks, throttles, or caps spend. Each time the
// cumulative cost crosses the next whole-currency-unit threshold it emits
// one diagnostic log line and advances the threshold, one unit at a time,
// until the threshold again exceeds the running total.
type Ledger struct {
	logger         *slog.Logger
	ratePerMillion float64
	total          float64
	nextThreshold  float64
	calls          int
	mu             sync.Mutex
}

// NewLedger creates a ledger charging ratePerMillion currency units per
// million tokens. A nil logger falls back to slog.Default.
func NewLedger(ratePerMillion float64, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		logger:         logger,
		ratePerMillion: ratePerMillion,
		nextThreshold:  1.0,
	}
}

// Record adds the cost of one call to the running total.
func (l *Ledger) Record(tokens int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	l.total += float64(tokens) / 1_000_000 * l.ratePerMillion

	for l.total >= l.nextThreshold {
		l.logger.Info("API spend crossed threshold",
			"total_cost", l.total,
			"threshold", l.nextThreshold,
			"calls", l.calls)
		l.nextThreshold += 1.0
	}
}

// Total returns the cumulative cost so far.
func (l *Ledger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Calls returns the number of recorded calls.
func (l *Ledger) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
