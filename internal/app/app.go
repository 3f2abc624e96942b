package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"tidy-go/internal/config"
	"tidy-go/internal/engine"
	"tidy-go/internal/fs"
	"tidy-go/internal/model"
	"tidy-go/internal/store"
	"tidy-go/internal/watcher"
)

// TidyApp is the application layer between the CLI and the engine.
// It constructs all dependencies from config, seeds default rules on
// first run, and manages store/log lifecycle on Close.
type TidyApp struct {
	cfg     *config.Config
	store   engine.Store
	engine  *engine.Engine
	fsmgr   engine.FilesystemManager
	logger  engine.Logger
	logFile *os.File
}

// NewTidyApp creates a fully wired TidyApp from the given config.
// operation identifies the CLI command being run (e.g. "OrganizeAll").
// The caller must call Close when done.
func NewTidyApp(cfg *config.Config, operation string) (*TidyApp, error) {
	st, err := store.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	fsmgr := fs.NewOSFilesystemManager()
	log := &slogAdapter{l: logger}
	eng := engine.NewEngine(st, fsmgr, log, engine.RealClock{}, engine.UUIDGenerator{})

	if err := eng.Load(); err != nil {
		st.Close()
		logFile.Close()
		return nil, fmt.Errorf("loading engine state: %w", err)
	}

	a := &TidyApp{
		cfg:     cfg,
		store:   st,
		engine:  eng,
		fsmgr:   fsmgr,
		logger:  log,
		logFile: logFile,
	}

	if err := a.seedDefaultRules(); err != nil {
		a.Close()
		return nil, fmt.Errorf("seeding default rules: %w", err)
	}

	return a, nil
}

// seedDefaultRules installs the default rule set when the store holds
// no rules (first run).
func (a *TidyApp) seedDefaultRules() error {
	if len(a.engine.Rules()) > 0 {
		return nil
	}
	for _, rule := range DefaultRules() {
		if err := a.engine.AddRule(rule); err != nil {
			return err
		}
	}
	return nil
}

// Engine exposes the underlying engine for collaborators that need the
// full observable state (watcher, UI layers).
func (a *TidyApp) Engine() *engine.Engine {
	return a.engine
}

// AddWatchedDirectory registers a directory for organizing.
func (a *TidyApp) AddWatchedDirectory(rawPath string) error {
	p, err := a.fsmgr.Resolve(rawPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if !p.IsDir() {
		return fmt.Errorf("path is not a directory: %s", p.String())
	}
	return a.engine.AddWatchedDirectory(p.String())
}

// RemoveWatchedDirectory unregisters a directory.
func (a *TidyApp) RemoveWatchedDirectory(rawPath string) error {
	return a.engine.RemoveWatchedDirectory(rawPath)
}

// WatchedDirectories returns the watch list.
func (a *TidyApp) WatchedDirectories() []string {
	return a.engine.WatchedDirectories()
}

// Rules returns the rule list.
func (a *TidyApp) Rules() []model.Rule {
	return a.engine.Rules()
}

// OrganizeAll runs one pass over every watched directory and returns
// the number of operation records committed.
func (a *TidyApp) OrganizeAll(ctx context.Context) int {
	return a.engine.OrganizeAll(ctx)
}

// OrganizeDirectory runs one pass over a single directory.
func (a *TidyApp) OrganizeDirectory(ctx context.Context, rawPath string) int {
	return a.engine.OrganizeDirectory(ctx, rawPath)
}

// RecentOperations returns up to limit ledger entries, newest first.
func (a *TidyApp) RecentOperations(limit int) []model.FileOperation {
	return a.engine.RecentOperations(limit)
}

// Statistics returns the running counters.
func (a *TidyApp) Statistics() model.Statistics {
	return a.engine.Statistics()
}

// ResetStatistics zeroes the counters.
func (a *TidyApp) ResetStatistics() error {
	return a.engine.ResetStatistics()
}

// Watch starts the filesystem watcher over the watched directories and
// blocks until ctx is cancelled.
func (a *TidyApp) Watch(ctx context.Context) error {
	debounce := time.Duration(a.cfg.Watcher.DebounceMS) * time.Millisecond
	w, err := watcher.New(a.engine, a.logger, debounce)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

// Close closes the store and the log file.
func (a *TidyApp) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
