package domain

import (
	"strings"
	"time"
)

// TaskColumn represents a dashboard kanban column.
type TaskColumn string

const (
	TaskColumnBacklog    TaskColumn = "backlog"
	TaskColumnInProgress TaskColumn = "in-progress"
	TaskColumnDone       TaskColumn = "done"
)

// IsValid checks if the column is one of the dashboard columns.
func (c TaskColumn) IsValid() bool {
	switch c {
	case TaskColumnBacklog, TaskColumnInProgress, TaskColumnDone:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a board task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// BoardTask represents a kanban card ingested from the board file.
// The board owns its cards; the command center only reads them.
type BoardTask struct {
	ID           string
	Title        string
	Description  string
	Column       TaskColumn
	Priority     TaskPriority
	Assignee     string
	CreatedAt    time.Time
	LastUpdateAt time.Time
}

// maxDescriptionRunes is the display limit for task descriptions.
const maxDescriptionRunes = 100

// boardColumnMapping maps board file columns to dashboard columns.
// Recurring cards are treated as backlog work.
var boardColumnMapping = map[string]TaskColumn{
	"backlog":     TaskColumnBacklog,
	"in-progress": TaskColumnInProgress,
	"recurring":   TaskColumnBacklog,
	"done":        TaskColumnDone,
}

// MapBoardColumn maps a board file column name to a dashboard column.
// Unknown columns land in the backlog.
func MapBoardColumn(column string) TaskColumn {
	if mapped, ok := boardColumnMapping[column]; ok {
		return mapped
	}
	return TaskColumnBacklog
}

// TruncateDescription shortens a description to the display limit,
// appending "..." when anything was cut.
func TruncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) <= maxDescriptionRunes {
		return description
	}
	return string(runes[:maxDescriptionRunes]) + "..."
}

// assigneeKeywords routes unassigned cards to agents by topic.
var assigneeKeywords = []struct {
	assignee string
	words    []string
}{
	{"Zillow Bot", []string{"zillow", "real estate", "property", "section 8"}},
	{"Ghost", []string{"content", "write", "post", "social", "twitter", "instagram"}},
	{"Admin", []string{"asana", "admin", "manage", "organize", "pipeline"}},
}

// RouteAssignee picks an agent for a card based on its title and
// description. The coordinator picks up anything unmatched.
func RouteAssignee(title, description string) string {
	text := strings.ToLower(title) + " " + strings.ToLower(description)
	for _, route := range assigneeKeywords {
		for _, word := range route.words {
			if strings.Contains(text, word) {
				return route.assignee
			}
		}
	}
	return "Arthur"
}
