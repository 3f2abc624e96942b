package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"tidy-go/internal/model"
)

// Engine is the single owner of the mutable organizer state: the rule
// list, the watch list, the operation ledger, and the statistics. It
// ties the matcher and executor together and offers its state to the
// persistence collaborator on every mutation.
type Engine struct {
	store  Store
	fsmgr  FilesystemManager
	logger Logger
	clock  Clock
	idgen  IDGenerator

	executor *Executor
	ledger   *Ledger

	mu      sync.Mutex // guards rules and watched
	rules   []model.Rule
	watched []string

	// organizing enforces the single-active-pass invariant. A trigger
	// arriving while a pass runs is ignored, not queued; the CAS closes
	// the check-then-set race a plain flag would have.
	organizing atomic.Bool
}

// NewEngine creates an Engine with the provided dependencies. Call Load
// before use to restore persisted state.
func NewEngine(store Store, fsmgr FilesystemManager, logger Logger, clock Clock, idgen IDGenerator) *Engine {
	return &Engine{
		store:    store,
		fsmgr:    fsmgr,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
		executor: NewExecutor(fsmgr, logger, clock, idgen),
		ledger:   NewLedger(clock),
	}
}

// Load restores rules, watch list, operation history, and statistics
// from the store.
func (e *Engine) Load() error {
	rules, err := e.store.LoadRules()
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	watched, err := e.store.LoadWatchedDirectories()
	if err != nil {
		return fmt.Errorf("loading watched directories: %w", err)
	}

	ops, err := e.store.LoadOperations(MaxLedgerEntries)
	if err != nil {
		return fmt.Errorf("loading operations: %w", err)
	}

	stats, err := e.store.LoadStatistics()
	if err != nil {
		return fmt.Errorf("loading statistics: %w", err)
	}

	e.mu.Lock()
	e.rules = rules
	e.watched = watched
	e.mu.Unlock()
	e.ledger.Restore(ops, stats)

	e.logger.Debug("state loaded", "rules", len(rules), "watched", len(watched), "operations", len(ops))
	return nil
}

// AddWatchedDirectory registers a directory for organizing. Adding a
// path that is already watched is a no-op.
func (e *Engine) AddWatchedDirectory(rawPath string) error {
	path, err := e.fsmgr.ExpandPath(rawPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, existing := range e.watched {
		if existing == path {
			return nil
		}
	}
	e.watched = append(e.watched, path)

	if err := e.store.SaveWatchedDirectories(e.watched); err != nil {
		return fmt.Errorf("persisting watched directories: %w", err)
	}
	e.logger.Info("directory watched", "path", path)
	return nil
}

// RemoveWatchedDirectory unregisters a directory. Removing a path that
// is not watched is a no-op.
func (e *Engine) RemoveWatchedDirectory(rawPath string) error {
	path, err := e.fsmgr.ExpandPath(rawPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.watched[:0]
	removed := false
	for _, existing := range e.watched {
		if existing == path {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		return nil
	}
	e.watched = kept

	if err := e.store.SaveWatchedDirectories(e.watched); err != nil {
		return fmt.Errorf("persisting watched directories: %w", err)
	}
	e.logger.Info("directory unwatched", "path", path)
	return nil
}

// WatchedDirectories returns a snapshot of the watch list in insertion
// order.
func (e *Engine) WatchedDirectories() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.watched...)
}

// AddRule validates and appends a rule, assigning an ID and timestamps.
func (e *Engine) AddRule(rule model.Rule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}
	if rule.ID == "" {
		rule.ID = e.idgen.New()
	}
	now := e.clock.Now()
	rule.CreatedAt = now
	rule.LastModified = now

	e.mu.Lock()
	defer e.mu.Unlock()

	e.rules = append(e.rules, rule)
	if err := e.store.SaveRules(e.rules); err != nil {
		return fmt.Errorf("persisting rules: %w", err)
	}
	e.logger.Info("rule added", "id", rule.ID, "name", rule.Name)
	return nil
}

// UpdateRule replaces the rule with the same ID, preserving its
// creation time and position (and therefore its tie-break order).
func (e *Engine) UpdateRule(rule model.Rule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.rules {
		if e.rules[i].ID != rule.ID {
			continue
		}
		rule.CreatedAt = e.rules[i].CreatedAt
		rule.LastModified = e.clock.Now()
		e.rules[i] = rule

		if err := e.store.SaveRules(e.rules); err != nil {
			return fmt.Errorf("persisting rules: %w", err)
		}
		e.logger.Info("rule updated", "id", rule.ID, "name", rule.Name)
		return nil
	}
	return fmt.Errorf("no rule with id %s", rule.ID)
}

// RemoveRule deletes the rule with the given ID. Removing an unknown ID
// is a no-op.
func (e *Engine) RemoveRule(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.rules[:0]
	removed := false
	for _, r := range e.rules {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return nil
	}
	e.rules = kept

	if err := e.store.SaveRules(e.rules); err != nil {
		return fmt.Errorf("persisting rules: %w", err)
	}
	e.logger.Info("rule removed", "id", id)
	return nil
}

// Rules returns a snapshot of the rule list in insertion order.
func (e *Engine) Rules() []model.Rule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.Rule(nil), e.rules...)
}

// RecentOperations returns up to limit ledger entries, newest first.
func (e *Engine) RecentOperations(limit int) []model.FileOperation {
	return e.ledger.Recent(limit)
}

// Statistics returns a snapshot of the running counters.
func (e *Engine) Statistics() model.Statistics {
	return e.ledger.Statistics()
}

// ResetStatistics zeroes the counters and persists the reset.
func (e *Engine) ResetStatistics() error {
	e.ledger.ResetStatistics()
	if err := e.store.SaveStatistics(e.ledger.Statistics()); err != nil {
		return fmt.Errorf("persisting statistics: %w", err)
	}
	return nil
}

// Organizing reports whether a pass is currently running.
func (e *Engine) Organizing() bool {
	return e.organizing.Load()
}

// OrganizeAll runs one pass over every watched directory and returns
// the number of operation records committed. A pass already in progress
// causes the trigger to be ignored (returns 0). One unreadable
// directory never prevents organizing the rest. Cancelling ctx stops
// the pass before the next directory; in-flight file operations are
// not rolled back.
func (e *Engine) OrganizeAll(ctx context.Context) int {
	if !e.organizing.CompareAndSwap(false, true) {
		e.logger.Warn("organize pass already running, trigger ignored")
		return 0
	}
	defer e.organizing.Store(false)

	total := 0
	for _, dir := range e.WatchedDirectories() {
		if ctx.Err() != nil {
			e.logger.Info("organize pass stopped", "reason", ctx.Err())
			break
		}
		total += e.organizeOne(dir)
	}

	e.logger.Info("organize pass complete", "operations", total)
	return total
}

// OrganizeDirectory runs one pass over a single directory, subject to
// the same single-active-pass guard as OrganizeAll.
func (e *Engine) OrganizeDirectory(ctx context.Context, rawPath string) int {
	if !e.organizing.CompareAndSwap(false, true) {
		e.logger.Warn("organize pass already running, trigger ignored")
		return 0
	}
	defer e.organizing.Store(false)

	if ctx.Err() != nil {
		return 0
	}

	path, err := e.fsmgr.ExpandPath(rawPath)
	if err != nil {
		e.logger.Error("cannot resolve directory", "path", rawPath, "error", err)
		return 0
	}
	return e.organizeOne(path)
}

// organizeOne scans one directory and applies the matched rule's
// actions to each direct file child. Scan errors are logged and the
// directory skipped; per-file failures become failed ledger records.
func (e *Engine) organizeOne(dir string) int {
	resolved, err := e.fsmgr.Resolve(dir)
	if err != nil {
		e.logger.Error("skipping directory", "path", dir, "error", err)
		return 0
	}
	files, err := e.fsmgr.ListFiles(resolved)
	if err != nil {
		e.logger.Error("skipping directory", "path", dir, "error", err)
		return 0
	}

	rules := e.Rules()
	committed := 0

	for _, f := range files {
		file := e.buildFileInfo(f)
		rule := SelectRule(file, rules)
		if rule == nil {
			continue
		}
		e.logger.Debug("rule matched", "rule", rule.Name, "file", file.Path)

		// Commit each record immediately so a failure partway through
		// a multi-action rule still records the successful prefix.
		for _, action := range rule.Actions {
			op := e.executor.Execute(action, file)
			if op == nil {
				continue
			}
			e.commit(*op)
			committed++
		}
	}

	return committed
}

// buildFileInfo derives the attribute snapshot for one directory entry.
// Missing metadata defaults rather than aborting the scan.
func (e *Engine) buildFileInfo(p *Path) model.FileInfo {
	name := filepath.Base(p.String())

	var size int64
	modified := e.clock.Now()
	if info := p.Info(); info != nil {
		size = info.Size()
		modified = info.ModTime()
	}

	created := modified
	if ct := e.fsmgr.CreationTime(p); ct.Valid {
		created = ct.Time
	}

	return model.FileInfo{
		Name:       name,
		Path:       p.String(),
		Size:       size,
		CreatedAt:  created,
		ModifiedAt: modified,
		FileType:   Classify(filepath.Ext(name)),
	}
}

// commit records one operation in the ledger and offers it to the
// store. Persistence failures are logged, never surfaced: the pass
// guarantee is that it only ever produces per-file records.
func (e *Engine) commit(op model.FileOperation) {
	e.ledger.Record(op)

	if err := e.store.AppendOperation(op, MaxLedgerEntries); err != nil {
		e.logger.Error("persisting operation", "id", op.ID, "error", err)
	}
	if err := e.store.SaveStatistics(e.ledger.Statistics()); err != nil {
		e.logger.Error("persisting statistics", "error", err)
	}
}
