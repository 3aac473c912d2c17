package service

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// watchDebounce coalesces the burst of writes editors and agents
// produce when saving the board file.
const watchDebounce = 500 * time.Millisecond

// Scheduler drives refresh cycles: a fixed interval ticker, plus an
// optional filesystem watch that refreshes promptly when the board
// file changes instead of waiting out the interval.
type Scheduler struct {
	refresher *Refresher
	interval  time.Duration
	boardFile string
	watch     bool
}

// NewScheduler creates a Scheduler. Interval zero disables the ticker;
// watch false disables the board file watch.
func NewScheduler(refresher *Refresher, interval time.Duration, boardFile string, watch bool) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		boardFile: boardFile,
		watch:     watch,
	}
}

// Run blocks until the context is canceled, triggering refreshes as
// configured. An immediate refresh runs first so the store is warm
// before the first tick.
func (s *Scheduler) Run(ctx context.Context) error {
	s.runRefresh(ctx)

	eg, egCtx := errgroup.WithContext(ctx)

	if s.interval > 0 {
		eg.Go(func() error {
			return s.runTicker(egCtx)
		})
	}
	if s.watch && s.boardFile != "" {
		eg.Go(func() error {
			return s.watchBoard(egCtx)
		})
	}

	return eg.Wait()
}

func (s *Scheduler) runTicker(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.runRefresh(ctx)
		}
	}
}

// watchBoard refreshes shortly after the board file is written. The
// watch is on the directory: editors replace files by rename, which
// drops a watch placed on the file itself. A watch that cannot be
// established degrades to ticker-only operation.
func (s *Scheduler) watchBoard(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("board watch unavailable, relying on interval refresh", "error", err)
		return nil
	}
	defer watcher.Close()

	dir := filepath.Dir(s.boardFile)
	if err := watcher.Add(dir); err != nil {
		slog.Warn("board watch unavailable, relying on interval refresh",
			"dir", dir, "error", err)
		return nil
	}

	slog.Info("watching board file", "path", s.boardFile)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.boardFile) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				slog.Info("board file changed, refreshing")
				s.runRefresh(ctx)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("board watch error", "error", err)
		}
	}
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	err := s.refresher.Refresh(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrRefreshInProgress):
		slog.Debug("refresh already running, skipping trigger")
	case errors.Is(err, context.Canceled):
	default:
		slog.Error("scheduled refresh failed", "error", err)
	}
}
