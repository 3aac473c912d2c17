package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// boardTaskColumns is the shared list of columns for board task queries.
var boardTaskColumns = []string{
	"id", "title", "description", "column_name", "priority", "assignee",
	"created_at", "last_update_at",
}

// BoardTaskRepository handles database operations for the board snapshot.
type BoardTaskRepository struct {
	pool *pgxpool.Pool
}

// NewBoardTaskRepository creates a new BoardTaskRepository.
func NewBoardTaskRepository(pool *pgxpool.Pool) *BoardTaskRepository {
	return &BoardTaskRepository{pool: pool}
}

// scanBoardTask scans a single row into a BoardTask struct.
func scanBoardTask(row pgx.Row) (*domain.BoardTask, error) {
	var task domain.BoardTask
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Column,
		&task.Priority,
		&task.Assignee,
		&task.CreatedAt,
		&task.LastUpdateAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan board task: %w", err)
	}
	return &task, nil
}

// scanBoardTasks scans multiple rows into a slice of BoardTask structs.
func scanBoardTasks(rows pgx.Rows) ([]*domain.BoardTask, error) {
	defer rows.Close()

	var tasks []*domain.BoardTask
	for rows.Next() {
		task, err := scanBoardTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// ReplaceAll swaps the stored board snapshot for the freshly collected
// one within the refresh transaction. The board file is the source of
// record; the table only mirrors it.
func (r *BoardTaskRepository) ReplaceAll(ctx context.Context, tx pgx.Tx, tasks []domain.BoardTask) error {
	if _, err := tx.Exec(ctx, "DELETE FROM board_tasks"); err != nil {
		return fmt.Errorf("clear board tasks: %w", err)
	}

	if len(tasks) == 0 {
		return nil
	}

	qb := psql.
		Insert("board_tasks").
		Columns(boardTaskColumns...)
	for _, task := range tasks {
		qb = qb.Values(
			task.ID,
			task.Title,
			task.Description,
			task.Column,
			task.Priority,
			task.Assignee,
			task.CreatedAt,
			task.LastUpdateAt,
		)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("build ReplaceAll query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert board tasks: %w", err)
	}

	return nil
}

// BoardTaskFilters holds the supported filters for board task listing.
type BoardTaskFilters struct {
	Column   *string
	Assignee *string
	Limit    int
	Offset   int
}

// List retrieves board tasks with filters and pagination. Tasks are
// ordered by column, then most recently updated first.
func (r *BoardTaskRepository) List(ctx context.Context, filters BoardTaskFilters) ([]*domain.BoardTask, int, error) {
	qb := psql.Select(boardTaskColumns...).From("board_tasks")
	countQb := psql.Select("COUNT(*)").From("board_tasks")

	if filters.Column != nil {
		qb = qb.Where(sq.Eq{"column_name": *filters.Column})
		countQb = countQb.Where(sq.Eq{"column_name": *filters.Column})
	}
	if filters.Assignee != nil {
		qb = qb.Where(sq.Eq{"assignee": *filters.Assignee})
		countQb = countQb.Where(sq.Eq{"assignee": *filters.Assignee})
	}

	qb = qb.
		OrderBy("CASE column_name WHEN 'in-progress' THEN 1 WHEN 'backlog' THEN 2 WHEN 'done' THEN 3 END ASC").
		OrderBy("last_update_at DESC")

	if filters.Limit > 0 {
		qb = qb.Limit(uint64(filters.Limit)).Offset(uint64(filters.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query board tasks: %w", err)
	}

	tasks, err := scanBoardTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count board tasks: %w", err)
	}

	return tasks, total, nil
}
