package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
	"github.com/blackboxalchemist/cmdcenter/internal/notifier"
	"github.com/blackboxalchemist/cmdcenter/internal/repository"
)

// Collector interfaces, one per source. The refresher depends on these
// rather than the concrete collectors so tests can stub each source
// independently.
type (
	// BoardSource reads the kanban board file.
	BoardSource interface {
		Collect(ctx context.Context) ([]domain.BoardTask, error)
	}

	// DealsSource aggregates revenue from the deals base.
	DealsSource interface {
		DealRevenue(ctx context.Context) (domain.DealRevenue, error)
	}

	// LedgerSource fetches recent transactions.
	LedgerSource interface {
		Transactions(ctx context.Context) ([]domain.Transaction, error)
	}

	// CommsSource supplies message counters.
	CommsSource interface {
		SMSStats(ctx context.Context) (domain.CommsStats, error)
		EmailStats() domain.CommsStats
	}
)

// Refresher runs one collection cycle: gather from every source in
// parallel, persist what arrived in a single transaction, derive feed
// entries from what changed, export the document, and ping listeners.
//
// A failing source never aborts the cycle; its previous stored data
// keeps being served and its health record says so. The cycle itself
// fails only when persistence fails or every source errored at once.
type Refresher struct {
	pool *pgxpool.Pool

	board  BoardSource
	deals  DealsSource
	ledger LedgerSource
	comms  CommsSource
	status *StatusEngine

	agentRepo       *repository.AgentRepository
	boardTaskRepo   *repository.BoardTaskRepository
	transactionRepo *repository.TransactionRepository
	activityRepo    *repository.ActivityRepository
	metricsRepo     *repository.MetricsRepository
	sourceRepo      *repository.SourceRepository

	exporter *Exporter
	notifier *notifier.Notifier

	timeout time.Duration
	running atomic.Bool

	now func() time.Time
}

// RefresherConfig holds construction parameters for the Refresher.
type RefresherConfig struct {
	Pool     *pgxpool.Pool
	Board    BoardSource
	Deals    DealsSource
	Ledger   LedgerSource
	Comms    CommsSource
	Status   *StatusEngine
	Exporter *Exporter
	Notifier *notifier.Notifier
	Timeout  time.Duration
}

// NewRefresher creates a Refresher with repositories bound to the pool.
func NewRefresher(cfg RefresherConfig) *Refresher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	return &Refresher{
		pool:            cfg.Pool,
		board:           cfg.Board,
		deals:           cfg.Deals,
		ledger:          cfg.Ledger,
		comms:           cfg.Comms,
		status:          cfg.Status,
		agentRepo:       repository.NewAgentRepository(cfg.Pool),
		boardTaskRepo:   repository.NewBoardTaskRepository(cfg.Pool),
		transactionRepo: repository.NewTransactionRepository(cfg.Pool),
		activityRepo:    repository.NewActivityRepository(cfg.Pool),
		metricsRepo:     repository.NewMetricsRepository(cfg.Pool),
		sourceRepo:      repository.NewSourceRepository(cfg.Pool),
		exporter:        cfg.Exporter,
		notifier:        cfg.Notifier,
		timeout:         timeout,
		now:             time.Now,
	}
}

// Running reports whether a refresh cycle is currently underway.
func (r *Refresher) Running() bool {
	return r.running.Load()
}

// Refresh runs one cycle and blocks until it completes. Returns
// domain.ErrRefreshInProgress when another cycle is already running.
func (r *Refresher) Refresh(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return domain.ErrRefreshInProgress
	}
	defer r.running.Store(false)

	return r.refresh(ctx)
}

// TryRefreshAsync starts a cycle in the background. Returns false when
// one is already running.
func (r *Refresher) TryRefreshAsync() bool {
	if !r.running.CompareAndSwap(false, true) {
		return false
	}

	go func() {
		defer r.running.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.refresh(ctx); err != nil {
			slog.Error("background refresh failed", "error", err)
		}
	}()

	return true
}

// collection holds everything one cycle gathered, successful or not.
type collection struct {
	boardTasks []domain.BoardTask
	boardErr   error

	deals    domain.DealRevenue
	dealsErr error

	transactions []domain.Transaction
	ledgerErr    error

	sms    domain.CommsStats
	smsErr error

	email domain.CommsStats
}

func (c *collection) allFailed() bool {
	return c.boardErr != nil && c.dealsErr != nil && c.ledgerErr != nil && c.smsErr != nil
}

func (r *Refresher) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	started := r.now()
	slog.Info("refresh started")

	gathered := r.collect(ctx)
	if gathered.allFailed() {
		return fmt.Errorf("%w: board=%v airtable=%v sheets=%v comms=%v",
			domain.ErrAllSourcesFailed,
			gathered.boardErr, gathered.dealsErr, gathered.ledgerErr, gathered.smsErr)
	}

	// Previous state, loaded before the write transaction so feed
	// derivation can diff against it.
	previousMetrics, err := r.metricsRepo.Latest(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoMetrics) {
		return fmt.Errorf("load previous metrics: %w", err)
	}
	previousTasks, _, err := r.boardTaskRepo.List(ctx, repository.BoardTaskFilters{})
	if err != nil {
		return fmt.Errorf("load previous board: %w", err)
	}
	previousSources, err := r.sourceRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load previous sources: %w", err)
	}
	agents, err := r.agentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load agents: %w", err)
	}

	decisions, statusActivities := r.status.Evaluate(ctx, agents)

	if err := r.persist(ctx, gathered, previousMetrics, previousTasks, previousSources, decisions, statusActivities); err != nil {
		return err
	}

	if err := r.exporter.Export(ctx); err != nil {
		return fmt.Errorf("export dashboard document: %w", err)
	}

	if r.notifier != nil {
		r.notifier.Broadcast()
	}

	slog.Info("refresh completed",
		"duration", time.Since(started),
		"board_tasks", len(gathered.boardTasks),
		"transactions", len(gathered.transactions),
		"degraded", gathered.boardErr != nil || gathered.dealsErr != nil ||
			gathered.ledgerErr != nil || gathered.smsErr != nil)

	return nil
}

// collect gathers from every source in parallel. Errors are recorded
// per source, never propagated; a slow or dead source must not take
// the others down with it.
func (r *Refresher) collect(ctx context.Context) *collection {
	var gathered collection

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		gathered.boardTasks, gathered.boardErr = r.board.Collect(egCtx)
		return nil
	})
	eg.Go(func() error {
		gathered.deals, gathered.dealsErr = r.deals.DealRevenue(egCtx)
		return nil
	})
	eg.Go(func() error {
		gathered.transactions, gathered.ledgerErr = r.ledger.Transactions(egCtx)
		return nil
	})
	eg.Go(func() error {
		gathered.sms, gathered.smsErr = r.comms.SMSStats(egCtx)
		return nil
	})
	_ = eg.Wait()

	gathered.email = r.comms.EmailStats()

	for name, err := range map[domain.SourceName]error{
		domain.SourceBoard:    gathered.boardErr,
		domain.SourceAirtable: gathered.dealsErr,
		domain.SourceSheets:   gathered.ledgerErr,
		domain.SourceComms:    gathered.smsErr,
	} {
		if err != nil {
			slog.Warn("source collection failed", "source", name, "error", err)
		}
	}

	return &gathered
}

// persist writes the cycle's results in one transaction: source health,
// agent states, the board snapshot, new transactions, the metric
// snapshot, and every derived feed entry.
func (r *Refresher) persist(
	ctx context.Context,
	gathered *collection,
	previousMetrics *domain.MetricSet,
	previousTasks []*domain.BoardTask,
	previousSources []*domain.Source,
	decisions []StatusDecision,
	statusActivities []domain.Activity,
) error {
	now := r.now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin refresh transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback refresh transaction", "error", err)
		}
	}()

	sourceRecords := r.sourceRecords(gathered, previousSources, now)

	activities := statusActivities
	activities = append(activities, deriveSourceActivities(sourceRecords, previousSources, now)...)

	for _, source := range sourceRecords {
		if err := r.sourceRepo.Upsert(ctx, tx, source); err != nil {
			return err
		}
	}

	for _, decision := range decisions {
		if !decision.Changed {
			continue
		}
		if err := r.agentRepo.UpdateState(ctx, tx, decision.Slug, decision.State, decision.CurrentTask); err != nil {
			return err
		}
	}

	if gathered.boardErr == nil {
		activities = append(activities, deriveBoardActivities(previousTasks, gathered.boardTasks, now)...)
		if err := r.boardTaskRepo.ReplaceAll(ctx, tx, gathered.boardTasks); err != nil {
			return err
		}
	}

	if gathered.ledgerErr == nil {
		inserted, err := r.transactionRepo.InsertNew(ctx, tx, gathered.transactions)
		if err != nil {
			return err
		}
		if activity := deriveFinanceActivity(inserted, now); activity != nil {
			activities = append(activities, *activity)
		}
	}

	metrics := buildMetricSet(gathered, previousMetrics)
	activities = append(activities, deriveMetricActivities(previousMetrics, metrics, gathered, now)...)
	if err := r.metricsRepo.InsertSnapshot(ctx, tx, metrics); err != nil {
		return err
	}

	for i := range activities {
		if err := r.activityRepo.Insert(ctx, tx, &activities[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit refresh transaction: %w", err)
	}

	return nil
}

// sourceRecords builds the health record for each source. A source
// that failed but has succeeded before is degraded, not errored: its
// previously stored data is still what the dashboard serves.
func (r *Refresher) sourceRecords(gathered *collection, previousSources []*domain.Source, now time.Time) []*domain.Source {
	previous := make(map[domain.SourceName]*domain.Source, len(previousSources))
	for _, source := range previousSources {
		previous[source.Name] = source
	}

	records := make([]*domain.Source, 0, 4)
	for name, collectErr := range map[domain.SourceName]error{
		domain.SourceBoard:    gathered.boardErr,
		domain.SourceAirtable: gathered.dealsErr,
		domain.SourceSheets:   gathered.ledgerErr,
		domain.SourceComms:    gathered.smsErr,
	} {
		record := &domain.Source{Name: name, CheckedAt: now}
		if collectErr == nil {
			okAt := now
			record.State = domain.SourceStateOK
			record.LastOKAt = &okAt
		} else {
			record.LastError = collectErr.Error()
			record.State = domain.SourceStateError
			if prev, ok := previous[name]; ok && prev.LastOKAt != nil {
				record.State = domain.SourceStateDegraded
			}
		}
		records = append(records, record)
	}

	return records
}

// deriveSourceActivities derives SYSTEM feed entries for health
// transitions: one when a source stops answering, one when it comes back.
func deriveSourceActivities(records []*domain.Source, previousSources []*domain.Source, now time.Time) []domain.Activity {
	previous := make(map[domain.SourceName]*domain.Source, len(previousSources))
	for _, source := range previousSources {
		previous[source.Name] = source
	}

	var activities []domain.Activity
	for _, record := range records {
		prev, seen := previous[record.Name]
		wasHealthy := !seen || prev.IsHealthy()

		switch {
		case wasHealthy && !record.IsHealthy() && seen:
			activities = append(activities, domain.Activity{
				Type:        domain.ActivityTypeSystem,
				Description: fmt.Sprintf("Source %s unavailable: %s", record.Name, record.LastError),
				OccurredAt:  now,
			})
		case !wasHealthy && record.IsHealthy():
			activities = append(activities, domain.Activity{
				Type:        domain.ActivityTypeSystem,
				Description: fmt.Sprintf("Source %s recovered", record.Name),
				OccurredAt:  now,
			})
		}
	}

	return activities
}

// buildMetricSet assembles the snapshot for this cycle. Figures from
// failed sources carry over from the previous snapshot so the
// dashboard never shows a zeroed counter because one API hiccuped.
func buildMetricSet(gathered *collection, previous *domain.MetricSet) *domain.MetricSet {
	metrics := &domain.MetricSet{Email: gathered.email}

	switch {
	case gathered.dealsErr == nil:
		metrics.DealRevenue = gathered.deals
	case previous != nil:
		metrics.DealRevenue = previous.DealRevenue
	}

	switch {
	case gathered.smsErr == nil:
		metrics.SMS = gathered.sms
	case previous != nil:
		metrics.SMS = previous.SMS
	default:
		metrics.SMS = domain.EstimatedSMSStats
	}

	return metrics
}

// deriveBoardActivities reports cards that moved between columns since
// the previous snapshot.
func deriveBoardActivities(previousTasks []*domain.BoardTask, currentTasks []domain.BoardTask, now time.Time) []domain.Activity {
	previous := make(map[string]domain.TaskColumn, len(previousTasks))
	for _, task := range previousTasks {
		previous[task.ID] = task.Column
	}

	var activities []domain.Activity
	for _, task := range currentTasks {
		before, seen := previous[task.ID]
		if !seen || before == task.Column {
			continue
		}
		activities = append(activities, domain.Activity{
			Type:        domain.ActivityTypeBoard,
			Description: fmt.Sprintf("Task %q moved to %s", task.Title, task.Column),
			OccurredAt:  now,
		})
	}

	return activities
}

// deriveFinanceActivity summarizes freshly recorded transactions.
func deriveFinanceActivity(inserted []domain.Transaction, now time.Time) *domain.Activity {
	if len(inserted) == 0 {
		return nil
	}

	var total float64
	for _, transaction := range inserted {
		total += transaction.Amount
	}

	word := "transactions"
	if len(inserted) == 1 {
		word = "transaction"
	}

	return &domain.Activity{
		Type:        domain.ActivityTypeFinance,
		Description: fmt.Sprintf("Recorded %d new %s totaling $%.2f", len(inserted), word, total),
		OccurredAt:  now,
	}
}

// deriveMetricActivities reports metric movement: revenue changes and
// measured (non-estimated) comms counters that moved.
func deriveMetricActivities(previous *domain.MetricSet, current *domain.MetricSet, gathered *collection, now time.Time) []domain.Activity {
	var activities []domain.Activity

	if gathered.dealsErr == nil {
		changed := previous == nil ||
			previous.DealRevenue.TotalRevenue != current.DealRevenue.TotalRevenue ||
			previous.DealRevenue.DealCount != current.DealRevenue.DealCount
		if changed {
			activities = append(activities, domain.Activity{
				Type: domain.ActivityTypeRevenue,
				Description: fmt.Sprintf("Deal revenue at $%.0f across %d deals",
					current.DealRevenue.TotalRevenue, current.DealRevenue.DealCount),
				OccurredAt: now,
			})
		}
	}

	if gathered.smsErr == nil && !current.SMS.Estimated {
		if previous == nil || previous.SMS.Today != current.SMS.Today {
			activities = append(activities, domain.Activity{
				Type:        domain.ActivityTypeSMS,
				Description: fmt.Sprintf("SMS outreach: %d messages sent today", current.SMS.Today),
				OccurredAt:  now,
			})
		}
	}

	if !current.Email.Estimated {
		if previous == nil || previous.Email.Today != current.Email.Today {
			activities = append(activities, domain.Activity{
				Type:        domain.ActivityTypeEmail,
				Description: fmt.Sprintf("Email outreach: %d messages sent today", current.Email.Today),
				OccurredAt:  now,
			})
		}
	}

	return activities
}

// CheckAgents runs the maintenance pass: agents idle past the cutoff
// go offline, and feed entries past the retention window are pruned.
func (r *Refresher) CheckAgents(ctx context.Context, offlineAfter, keepActivities time.Duration) (offlined, pruned int64, err error) {
	now := r.now()

	offlined, err = r.agentRepo.MarkOfflineStale(ctx, now.Add(-offlineAfter))
	if err != nil {
		return 0, 0, err
	}

	pruned, err = r.activityRepo.Prune(ctx, now.Add(-keepActivities))
	if err != nil {
		return offlined, 0, err
	}

	return offlined, pruned, nil
}
