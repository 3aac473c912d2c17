package repository

import (
	"context"
	"fmt"
	"time"
)

// StatsFilters holds the period boundaries for statistics queries.
type StatsFilters struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// AgentStatsResult holds statistics for a single agent.
type AgentStatsResult struct {
	AgentSlug     string
	AgentName     string
	AssignedTasks int
	TasksDone     int
	Activities    int
}

// BoardStatsResult holds the current board distribution.
type BoardStatsResult struct {
	TotalTasks    int
	TasksByColumn map[string]int
}

// RevenueStatsResult holds ledger aggregates for a period.
type RevenueStatsResult struct {
	Income           float64
	Spend            float64
	TransactionCount int
}

// GetAgentStats retrieves per-agent board assignments and feed counts.
// Board counts reflect the current snapshot; activity counts cover the
// requested period.
func (r *AgentRepository) GetAgentStats(ctx context.Context, filters StatsFilters) ([]AgentStatsResult, error) {
	query := `
		SELECT
			a.slug,
			a.name,
			COUNT(DISTINCT t.id) as assigned_tasks,
			COUNT(DISTINCT CASE WHEN t.column_name = 'done' THEN t.id END) as tasks_done,
			COUNT(DISTINCT CASE WHEN act.occurred_at >= $1 AND act.occurred_at <= $2 THEN act.id END) as activities
		FROM agents a
		LEFT JOIN board_tasks t ON t.assignee = a.name
		LEFT JOIN activities act ON act.agent_slug = a.slug
		GROUP BY a.slug, a.name
		ORDER BY a.slug
	`

	rows, err := r.pool.Query(ctx, query, filters.PeriodStart, filters.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("query agent stats: %w", err)
	}
	defer rows.Close()

	var results []AgentStatsResult
	for rows.Next() {
		var result AgentStatsResult
		err := rows.Scan(
			&result.AgentSlug,
			&result.AgentName,
			&result.AssignedTasks,
			&result.TasksDone,
			&result.Activities,
		)
		if err != nil {
			return nil, fmt.Errorf("scan agent stats: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agent stats rows: %w", err)
	}

	return results, nil
}

// GetBoardStats retrieves the current board distribution by column.
func (r *BoardTaskRepository) GetBoardStats(ctx context.Context) (*BoardStatsResult, error) {
	tasksByColumn := make(map[string]int)

	rows, err := r.pool.Query(ctx, `
		SELECT column_name, COUNT(*)
		FROM board_tasks
		GROUP BY column_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks by column: %w", err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var column string
		var count int
		if err := rows.Scan(&column, &count); err != nil {
			return nil, fmt.Errorf("scan column count: %w", err)
		}
		tasksByColumn[column] = count
		total += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column rows: %w", err)
	}

	return &BoardStatsResult{
		TotalTasks:    total,
		TasksByColumn: tasksByColumn,
	}, nil
}

// GetRevenueStats retrieves ledger aggregates for a period: income,
// spend (as a positive figure), and entry count.
func (r *TransactionRepository) GetRevenueStats(ctx context.Context, filters StatsFilters) (*RevenueStatsResult, error) {
	var result RevenueStatsResult
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount END), 0) as income,
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount END), 0) as spend,
			COUNT(*) as transaction_count
		FROM transactions
		WHERE occurred_on >= $1 AND occurred_on <= $2
	`, filters.PeriodStart, filters.PeriodEnd).Scan(
		&result.Income,
		&result.Spend,
		&result.TransactionCount,
	)
	if err != nil {
		return nil, fmt.Errorf("query revenue stats: %w", err)
	}

	return &result, nil
}
