package engine

import "tidy-go/internal/model"

// Store is the persistence collaborator for engine state. The engine
// owns the in-memory state for the process lifetime; the store is
// offered the current state on every mutation and asked for it once at
// startup. Implementations choose the encoding.
type Store interface {
	// LoadRules returns all persisted rules in insertion order.
	LoadRules() ([]model.Rule, error)

	// SaveRules replaces the persisted rule list.
	SaveRules(rules []model.Rule) error

	// LoadWatchedDirectories returns all persisted watch paths in
	// insertion order.
	LoadWatchedDirectories() ([]string, error)

	// SaveWatchedDirectories replaces the persisted watch list.
	SaveWatchedDirectories(paths []string) error

	// AppendOperation persists one operation record and prunes the
	// stored history to the most recent keep entries.
	AppendOperation(op model.FileOperation, keep int) error

	// LoadOperations returns the most recent persisted operations,
	// newest first, up to limit.
	LoadOperations(limit int) ([]model.FileOperation, error)

	// SaveStatistics replaces the persisted counters.
	SaveStatistics(stats model.Statistics) error

	// LoadStatistics returns the persisted counters, or zero values if
	// none were saved yet.
	LoadStatistics() (model.Statistics, error)

	// Close closes the store.
	Close() error
}
