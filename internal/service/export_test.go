package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

func documentFixtures() ([]*domain.BoardTask, []*domain.Transaction, []*domain.Agent, []*domain.Activity, *domain.MetricSet, []*domain.Source) {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	occurred := time.Date(2025, 6, 2, 14, 5, 0, 0, time.UTC)
	adminSlug := domain.SlugOperations

	tasks := []*domain.BoardTask{
		{
			ID:           "task-1",
			Title:        "Scan new Zillow listings",
			Description:  "Detroit metro, section 8 eligible",
			Column:       domain.TaskColumnInProgress,
			Priority:     domain.TaskPriorityHigh,
			Assignee:     "Zillow Bot",
			CreatedAt:    created,
			LastUpdateAt: occurred,
		},
	}

	transactions := []*domain.Transaction{
		{
			Date:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			Amount:      -42.50,
			Description: "Office supplies",
			Account:     "Checking",
			Category:    "Operations",
			CreatedAt:   occurred,
		},
	}

	agents := []*domain.Agent{
		{Slug: domain.SlugCoordinator, Name: "Arthur", State: domain.AgentStateActive, CurrentTask: "Coordinating Operations"},
		{Slug: domain.SlugContent, Name: "Ghost", State: domain.AgentStateIdle, CurrentTask: "Preparing Content Queue"},
	}

	activities := []*domain.Activity{
		{
			Type:        domain.ActivityTypeFinance,
			Description: "Recorded 1 new transaction",
			AgentSlug:   &adminSlug,
			OccurredAt:  occurred,
		},
	}

	metrics := &domain.MetricSet{
		DealRevenue: domain.DealRevenue{TotalRevenue: 175000, DealCount: 18, Last24h: 12000},
		SMS:         domain.EstimatedSMSStats,
		Email:       domain.EstimatedEmailStats,
	}

	sources := []*domain.Source{
		{Name: domain.SourceBoard, State: domain.SourceStateOK, CheckedAt: occurred},
		{Name: domain.SourceSheets, State: domain.SourceStateDegraded, LastError: "fetch transactions: 503", CheckedAt: occurred},
	}

	return tasks, transactions, agents, activities, metrics, sources
}

func TestNewDocumentWireFormat(t *testing.T) {
	tasks, transactions, agents, activities, metrics, sources := documentFixtures()
	now := time.Date(2025, 6, 2, 14, 10, 0, 0, time.UTC)

	document := newDocument(tasks, transactions, agents, activities, metrics, sources, now)

	require.Equal(t, "2025-06-02T14:10:00Z", document.LastUpdated)

	require.Len(t, document.Tasks, 1)
	require.Equal(t, "task-1", document.Tasks[0].ID)
	require.Equal(t, "in-progress", document.Tasks[0].Column)
	require.Equal(t, "2025-06-01T09:00:00Z", document.Tasks[0].Created)

	require.Len(t, document.Financial.Transactions, 1)
	require.Equal(t, "06/02/2025", document.Financial.Transactions[0].Date)
	require.Equal(t, -42.50, document.Financial.Transactions[0].Amount)

	require.Len(t, document.Agents, 2)
	require.True(t, document.Agents[domain.SlugCoordinator].Active)
	require.Equal(t, "Coordinating Operations", document.Agents[domain.SlugCoordinator].Task)
	require.False(t, document.Agents[domain.SlugContent].Active)

	require.Len(t, document.Activities, 1)
	require.Equal(t, "FINANCE", document.Activities[0].Type)
	require.Equal(t, "02:05 PM", document.Activities[0].Time)
	require.Equal(t, "2025-06-02T14:05:00Z", document.Activities[0].Timestamp)

	require.Equal(t, 175000.0, document.Metrics.DealRevenue.TotalRevenue)
	require.Equal(t, 18, document.Metrics.DealRevenue.DealCount)
	require.True(t, document.Metrics.SMSStats.Estimated)
	require.Equal(t, 50, document.Metrics.SMSStats.Today)

	require.Len(t, document.Sources, 2)
	require.Equal(t, "degraded", document.Sources[1].State)
	require.Equal(t, "fetch transactions: 503", document.Sources[1].LastError)
}

func TestNewDocumentEmptyStore(t *testing.T) {
	metrics := &domain.MetricSet{
		SMS:   domain.EstimatedSMSStats,
		Email: domain.EstimatedEmailStats,
	}
	now := time.Date(2025, 6, 2, 14, 10, 0, 0, time.UTC)

	document := newDocument(nil, nil, nil, nil, metrics, nil, now)

	// Empty sections marshal as [] and {}, never null; the dashboard
	// page iterates them without guards.
	data, err := json.Marshal(document)
	require.NoError(t, err)
	require.NotContains(t, string(data), "null")
	require.Contains(t, string(data), `"tasks":[]`)
}

func TestWriteDocumentAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard-data.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"stale": true}`), 0o644))

	tasks, transactions, agents, activities, metrics, sources := documentFixtures()
	document := newDocument(tasks, transactions, agents, activities, metrics, sources, time.Now())

	require.NoError(t, writeDocument(path, document))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var written DashboardDocument
	require.NoError(t, json.Unmarshal(data, &written))
	require.Len(t, written.Tasks, 1)

	// The temp file must not linger.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteDocumentCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dashboard-data.json")

	tasks, transactions, agents, activities, metrics, sources := documentFixtures()
	document := newDocument(tasks, transactions, agents, activities, metrics, sources, time.Now())

	require.NoError(t, writeDocument(path, document))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
