package collector_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blackboxalchemist/cmdcenter/internal/collector"
	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

func writeBoard(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board-data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBoard_Collect(t *testing.T) {
	path := writeBoard(t, `{
		"tasks": [
			{
				"id": "task-1",
				"title": "Scan Zillow listings",
				"description": "Check new Section 8 properties",
				"column": "in-progress",
				"priority": "high",
				"created": "2026-02-01",
				"activity": [
					{"date": "2026-02-02"},
					{"date": "2026-02-05T09:30:00"}
				]
			},
			{
				"id": "task-2",
				"title": "Old task",
				"description": "gone",
				"column": "done",
				"created": "2026-01-01",
				"archived": true
			},
			{
				"id": "task-3",
				"title": "Weekly review",
				"description": "Recurring ops review",
				"column": "recurring",
				"created": "2026-02-03"
			}
		]
	}`)

	tasks, err := collector.NewBoard(path).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2, "archived tasks must be skipped")

	first := tasks[0]
	require.Equal(t, "task-1", first.ID)
	require.Equal(t, domain.TaskColumnInProgress, first.Column)
	require.Equal(t, domain.TaskPriorityHigh, first.Priority)
	require.Equal(t, "Zillow Bot", first.Assignee, "keyword routing should pick the scout")
	require.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), first.CreatedAt)
	require.Equal(t, time.Date(2026, 2, 5, 9, 30, 0, 0, time.UTC), first.LastUpdateAt,
		"last activity entry wins")

	second := tasks[1]
	require.Equal(t, domain.TaskColumnBacklog, second.Column, "recurring maps to backlog")
	require.Equal(t, domain.TaskPriorityMedium, second.Priority, "missing priority defaults to medium")
	require.Equal(t, second.CreatedAt, second.LastUpdateAt, "no activity falls back to created")
}

func TestBoard_Collect_ExplicitAssigneeWins(t *testing.T) {
	path := writeBoard(t, `{
		"tasks": [
			{
				"id": "task-1",
				"title": "Write social content",
				"description": "Twitter thread",
				"column": "backlog",
				"assignee": "Arthur",
				"created": "2026-02-01"
			}
		]
	}`)

	tasks, err := collector.NewBoard(path).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Arthur", tasks[0].Assignee, "routing only applies to unassigned cards")
}

func TestBoard_Collect_AssigneeRouting(t *testing.T) {
	tests := []struct {
		title       string
		description string
		want        string
	}{
		{"Check property in Detroit", "", "Zillow Bot"},
		{"Post update", "instagram story", "Ghost"},
		{"Organize pipeline", "", "Admin"},
		{"Quarterly planning", "strategy review", "Arthur"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, domain.RouteAssignee(tt.title, tt.description))
		})
	}
}

func TestBoard_Collect_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 150)
	path := writeBoard(t, `{
		"tasks": [
			{
				"id": "task-1",
				"title": "Long one",
				"description": "`+long+`",
				"column": "backlog",
				"created": "2026-02-01"
			}
		]
	}`)

	tasks, err := collector.NewBoard(path).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("x", 100)+"...", tasks[0].Description)
}

func TestBoard_Collect_MissingFile(t *testing.T) {
	_, err := collector.NewBoard(filepath.Join(t.TempDir(), "absent.json")).Collect(context.Background())
	require.Error(t, err)
}

func TestBoard_Collect_InvalidJSON(t *testing.T) {
	path := writeBoard(t, `{broken`)
	_, err := collector.NewBoard(path).Collect(context.Background())
	require.Error(t, err)
}
