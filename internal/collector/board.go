package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// Board reads the kanban board file maintained by the agent workspace.
type Board struct {
	Path string
}

// NewBoard creates a board collector for the given file path.
func NewBoard(path string) *Board {
	return &Board{Path: path}
}

// boardFile is the on-disk shape of board-data.json.
type boardFile struct {
	Tasks []boardFileTask `json:"tasks"`
}

type boardFileTask struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Column      string              `json:"column"`
	Priority    string              `json:"priority"`
	Assignee    string              `json:"assignee"`
	Created     string              `json:"created"`
	Archived    bool                `json:"archived"`
	Activity    []boardFileActivity `json:"activity"`
}

type boardFileActivity struct {
	Date string `json:"date"`
}

// Collect reads the board file and maps its cards to dashboard tasks.
// Archived cards are skipped. The context is accepted for interface
// symmetry with the remote collectors; reading the file is local.
func (b *Board) Collect(ctx context.Context) ([]domain.BoardTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.Path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}

	var board boardFile
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("parse board file: %w", err)
	}

	tasks := make([]domain.BoardTask, 0, len(board.Tasks))
	for _, card := range board.Tasks {
		if card.Archived {
			continue
		}

		created, err := parseBoardTime(card.Created)
		if err != nil {
			return nil, fmt.Errorf("task %s: parse created: %w", card.ID, err)
		}

		// Last activity entry wins; cards without activity fall back
		// to their creation date.
		lastUpdate := created
		if len(card.Activity) > 0 {
			if date := card.Activity[len(card.Activity)-1].Date; date != "" {
				if parsed, err := parseBoardTime(date); err == nil {
					lastUpdate = parsed
				}
			}
		}

		priority := domain.TaskPriority(card.Priority)
		if priority == "" {
			priority = domain.TaskPriorityMedium
		}

		assignee := card.Assignee
		if assignee == "" {
			assignee = domain.RouteAssignee(card.Title, card.Description)
		}

		tasks = append(tasks, domain.BoardTask{
			ID:           card.ID,
			Title:        card.Title,
			Description:  domain.TruncateDescription(card.Description),
			Column:       domain.MapBoardColumn(card.Column),
			Priority:     priority,
			Assignee:     assignee,
			CreatedAt:    created,
			LastUpdateAt: lastUpdate,
		})
	}

	return tasks, nil
}

// boardTimeFormats are the timestamp forms found in board files:
// date-only, RFC3339, and RFC3339 without a zone.
var boardTimeFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseBoardTime(value string) (time.Time, error) {
	for _, format := range boardTimeFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}
