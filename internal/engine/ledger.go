package engine

import (
	"sync"

	"tidy-go/internal/model"
)

// MaxLedgerEntries bounds the in-memory operation history. Truncation
// discards the oldest entries only.
const MaxLedgerEntries = 100

// Ledger is an append-biased history of operation records plus running
// counters. Entries are newest-first and immutable once recorded. The
// ledger is a single serialized writer: the prepend+truncate+counter
// sequence is atomic under the mutex. It has no knowledge of why an
// operation happened, only whether it succeeded.
type Ledger struct {
	mu    sync.Mutex
	ops   []model.FileOperation
	stats model.Statistics
	clock Clock
}

// NewLedger creates an empty ledger.
func NewLedger(clock Clock) *Ledger {
	return &Ledger{clock: clock}
}

// Restore seeds the ledger from persisted state. Operations must be
// newest-first, as returned by Store.LoadOperations.
func (l *Ledger) Restore(ops []model.FileOperation, stats model.Statistics) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(ops) > MaxLedgerEntries {
		ops = ops[:MaxLedgerEntries]
	}
	l.ops = append([]model.FileOperation(nil), ops...)
	l.stats = stats
}

// Record prepends one operation, truncates to the most recent
// MaxLedgerEntries, bumps the matching counter, and touches the last
// organization time.
func (l *Ledger) Record(op model.FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ops = append([]model.FileOperation{op}, l.ops...)
	if len(l.ops) > MaxLedgerEntries {
		l.ops = l.ops[:MaxLedgerEntries]
	}

	if op.Success {
		l.stats.FilesOrganized++
	} else {
		l.stats.Errors++
	}
	now := l.clock.Now()
	l.stats.LastOrganizedAt = &now
}

// Recent returns up to limit operations, newest first. A non-positive
// limit returns the full retained history.
func (l *Ledger) Recent(limit int) []model.FileOperation {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 || limit > len(l.ops) {
		limit = len(l.ops)
	}
	return append([]model.FileOperation(nil), l.ops[:limit]...)
}

// Statistics returns a snapshot of the running counters.
func (l *Ledger) Statistics() model.Statistics {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := l.stats
	if l.stats.LastOrganizedAt != nil {
		t := *l.stats.LastOrganizedAt
		stats.LastOrganizedAt = &t
	}
	return stats
}

// ResetStatistics zeroes the counters. The retained history is kept.
func (l *Ledger) ResetStatistics() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stats = model.Statistics{}
}
