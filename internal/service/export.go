package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
	"github.com/blackboxalchemist/cmdcenter/internal/repository"
)

const (
	// exportActivityLimit caps the feed entries in the document.
	exportActivityLimit = 25
	// exportTransactionDays is the ledger window in the document.
	exportTransactionDays = 7
	// exportTransactionLimit caps the ledger entries in the document.
	exportTransactionLimit = 50
)

// Document time formats. The dashboard page renders these verbatim.
const (
	documentDateFormat  = "01/02/2006"
	documentClockFormat = "03:04 PM"
)

// DashboardDocument is the exported dashboard snapshot. The static
// page and any external consumers read this file directly, so the
// field names here are the wire format.
type DashboardDocument struct {
	Tasks       []TaskDocument           `json:"tasks"`
	Financial   FinancialDocument        `json:"financial"`
	Agents      map[string]AgentDocument `json:"agents"`
	Activities  []ActivityDocument       `json:"activities"`
	Metrics     MetricsDocument          `json:"metrics"`
	Sources     []SourceDocument         `json:"sources"`
	LastUpdated string                   `json:"lastUpdated"`
}

// TaskDocument is one kanban card in the document.
type TaskDocument struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Column      string `json:"column"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	Created     string `json:"created"`
	LastUpdate  string `json:"lastUpdate"`
}

// FinancialDocument wraps the ledger section.
type FinancialDocument struct {
	Transactions []TransactionDocument `json:"transactions"`
}

// TransactionDocument is one ledger entry in the document.
type TransactionDocument struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Account     string  `json:"account"`
	Category    string  `json:"category"`
	Timestamp   string  `json:"timestamp"`
}

// AgentDocument is one agent entry, keyed by slug in the document.
type AgentDocument struct {
	Active bool   `json:"active"`
	Task   string `json:"task"`
}

// ActivityDocument is one feed entry in the document.
type ActivityDocument struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Time        string `json:"time"`
}

// MetricsDocument is the metrics section of the document.
type MetricsDocument struct {
	DealRevenue DealRevenueDocument `json:"deal_revenue"`
	SMSStats    CommsDocument       `json:"sms_stats"`
	EmailStats  CommsDocument       `json:"email_stats"`
}

// DealRevenueDocument holds the deal figures.
type DealRevenueDocument struct {
	TotalRevenue float64 `json:"total_revenue"`
	DealCount    int     `json:"deal_count"`
	Last24h      float64 `json:"last_24h"`
}

// CommsDocument holds message counters for one channel.
type CommsDocument struct {
	Today     int  `json:"today"`
	ThisWeek  int  `json:"this_week"`
	ThisMonth int  `json:"this_month"`
	Estimated bool `json:"estimated,omitempty"`
}

// SourceDocument is one source health entry in the document.
type SourceDocument struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	LastError string `json:"last_error,omitempty"`
	CheckedAt string `json:"checked_at"`
}

// Exporter assembles the dashboard document from the store and writes
// it atomically to the export file.
type Exporter struct {
	path string

	boardTaskRepo   *repository.BoardTaskRepository
	transactionRepo *repository.TransactionRepository
	agentRepo       *repository.AgentRepository
	activityRepo    *repository.ActivityRepository
	metricsRepo     *repository.MetricsRepository
	sourceRepo      *repository.SourceRepository

	now func() time.Time
}

// NewExporter creates an Exporter targeting the given file path.
func NewExporter(
	path string,
	boardTaskRepo *repository.BoardTaskRepository,
	transactionRepo *repository.TransactionRepository,
	agentRepo *repository.AgentRepository,
	activityRepo *repository.ActivityRepository,
	metricsRepo *repository.MetricsRepository,
	sourceRepo *repository.SourceRepository,
) *Exporter {
	return &Exporter{
		path:            path,
		boardTaskRepo:   boardTaskRepo,
		transactionRepo: transactionRepo,
		agentRepo:       agentRepo,
		activityRepo:    activityRepo,
		metricsRepo:     metricsRepo,
		sourceRepo:      sourceRepo,
		now:             time.Now,
	}
}

// NewExporterFromPool creates an Exporter with repositories bound to
// the pool.
func NewExporterFromPool(path string, pool *pgxpool.Pool) *Exporter {
	return NewExporter(
		path,
		repository.NewBoardTaskRepository(pool),
		repository.NewTransactionRepository(pool),
		repository.NewAgentRepository(pool),
		repository.NewActivityRepository(pool),
		repository.NewMetricsRepository(pool),
		repository.NewSourceRepository(pool),
	)
}

// BuildDocument assembles the current dashboard snapshot from the store.
func (e *Exporter) BuildDocument(ctx context.Context) (*DashboardDocument, error) {
	tasks, _, err := e.boardTaskRepo.List(ctx, repository.BoardTaskFilters{})
	if err != nil {
		return nil, fmt.Errorf("list board tasks: %w", err)
	}

	transactions, err := e.transactionRepo.ListRecent(ctx, exportTransactionDays, exportTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	agents, err := e.agentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	activities, _, err := e.activityRepo.List(ctx, repository.ActivityFilters{Limit: exportActivityLimit})
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	metrics, err := e.metricsRepo.Latest(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoMetrics) {
			return nil, fmt.Errorf("load latest metrics: %w", err)
		}
		// First run: no refresh has recorded a snapshot yet. Export the
		// standing estimates so the counters are never blank.
		metrics = &domain.MetricSet{
			SMS:   domain.EstimatedSMSStats,
			Email: domain.EstimatedEmailStats,
		}
	}

	sources, err := e.sourceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	return newDocument(tasks, transactions, agents, activities, metrics, sources, e.now()), nil
}

// Export writes the current dashboard document to the export file.
func (e *Exporter) Export(ctx context.Context) error {
	document, err := e.BuildDocument(ctx)
	if err != nil {
		return err
	}
	return writeDocument(e.path, document)
}

// Path returns the export file path.
func (e *Exporter) Path() string {
	return e.path
}

// newDocument maps store records to the document wire format.
func newDocument(
	tasks []*domain.BoardTask,
	transactions []*domain.Transaction,
	agents []*domain.Agent,
	activities []*domain.Activity,
	metrics *domain.MetricSet,
	sources []*domain.Source,
	now time.Time,
) *DashboardDocument {
	document := &DashboardDocument{
		Tasks:       make([]TaskDocument, 0, len(tasks)),
		Agents:      make(map[string]AgentDocument, len(agents)),
		Activities:  make([]ActivityDocument, 0, len(activities)),
		Sources:     make([]SourceDocument, 0, len(sources)),
		LastUpdated: now.Format(time.RFC3339),
	}
	document.Financial.Transactions = make([]TransactionDocument, 0, len(transactions))

	for _, task := range tasks {
		document.Tasks = append(document.Tasks, TaskDocument{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Column:      string(task.Column),
			Priority:    string(task.Priority),
			Assignee:    task.Assignee,
			Created:     task.CreatedAt.Format(time.RFC3339),
			LastUpdate:  task.LastUpdateAt.Format(time.RFC3339),
		})
	}

	for _, transaction := range transactions {
		document.Financial.Transactions = append(document.Financial.Transactions, TransactionDocument{
			Date:        transaction.Date.Format(documentDateFormat),
			Amount:      transaction.Amount,
			Description: transaction.Description,
			Account:     transaction.Account,
			Category:    transaction.Category,
			Timestamp:   transaction.CreatedAt.Format(time.RFC3339),
		})
	}

	for _, agent := range agents {
		document.Agents[agent.Slug] = AgentDocument{
			Active: agent.IsActive(),
			Task:   agent.CurrentTask,
		}
	}

	for _, activity := range activities {
		document.Activities = append(document.Activities, ActivityDocument{
			Type:        string(activity.Type),
			Description: activity.Description,
			Timestamp:   activity.OccurredAt.Format(time.RFC3339),
			Time:        activity.OccurredAt.Format(documentClockFormat),
		})
	}

	document.Metrics = MetricsDocument{
		DealRevenue: DealRevenueDocument{
			TotalRevenue: metrics.DealRevenue.TotalRevenue,
			DealCount:    metrics.DealRevenue.DealCount,
			Last24h:      metrics.DealRevenue.Last24h,
		},
		SMSStats: CommsDocument{
			Today:     metrics.SMS.Today,
			ThisWeek:  metrics.SMS.ThisWeek,
			ThisMonth: metrics.SMS.ThisMonth,
			Estimated: metrics.SMS.Estimated,
		},
		EmailStats: CommsDocument{
			Today:     metrics.Email.Today,
			ThisWeek:  metrics.Email.ThisWeek,
			ThisMonth: metrics.Email.ThisMonth,
			Estimated: metrics.Email.Estimated,
		},
	}

	for _, source := range sources {
		document.Sources = append(document.Sources, SourceDocument{
			Name:      string(source.Name),
			State:     string(source.State),
			LastError: source.LastError,
			CheckedAt: source.CheckedAt.Format(time.RFC3339),
		})
	}

	return document
}

// writeDocument marshals the document and swaps it into place with a
// rename, so readers never observe a half-written file.
func writeDocument(path string, document *DashboardDocument) error {
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dashboard document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".dashboard-*.json")
	if err != nil {
		return fmt.Errorf("create temp export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace export file: %w", err)
	}

	return nil
}
