package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// activityColumns is the shared list of columns for activity queries.
var activityColumns = []string{
	"id", "type", "description", "agent_slug", "occurred_at", "created_at",
}

// ActivityRepository handles database operations for the activity feed.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Insert appends one feed entry within a transaction.
func (r *ActivityRepository) Insert(ctx context.Context, tx pgx.Tx, activity *domain.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.OccurredAt.IsZero() {
		activity.OccurredAt = time.Now()
	}

	query, args, err := psql.
		Insert("activities").
		Columns("id", "type", "description", "agent_slug", "occurred_at").
		Values(activity.ID, activity.Type, activity.Description, activity.AgentSlug, activity.OccurredAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Insert query for activity: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&activity.CreatedAt); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	return nil
}

// ActivityFilters holds the supported filters for feed listing.
type ActivityFilters struct {
	Type      *string
	AgentSlug *string
	Limit     int
	Offset    int
}

// List retrieves feed entries newest first with filters and pagination.
func (r *ActivityRepository) List(ctx context.Context, filters ActivityFilters) ([]*domain.Activity, int, error) {
	qb := psql.Select(activityColumns...).From("activities")
	countQb := psql.Select("COUNT(*)").From("activities")

	if filters.Type != nil {
		qb = qb.Where(sq.Eq{"type": *filters.Type})
		countQb = countQb.Where(sq.Eq{"type": *filters.Type})
	}
	if filters.AgentSlug != nil {
		qb = qb.Where(sq.Eq{"agent_slug": *filters.AgentSlug})
		countQb = countQb.Where(sq.Eq{"agent_slug": *filters.AgentSlug})
	}

	qb = qb.OrderBy("occurred_at DESC", "created_at DESC")
	if filters.Limit > 0 {
		qb = qb.Limit(uint64(filters.Limit)).Offset(uint64(filters.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var activity domain.Activity
		err := rows.Scan(
			&activity.ID,
			&activity.Type,
			&activity.Description,
			&activity.AgentSlug,
			&activity.OccurredAt,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, &activity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rows: %w", err)
	}

	countQuery, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	return activities, total, nil
}

// Prune deletes feed entries older than the cutoff. Returns the number
// of entries removed.
func (r *ActivityRepository) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.
		Delete("activities").
		Where(sq.Lt{"occurred_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build Prune query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune activities: %w", err)
	}

	return tag.RowsAffected(), nil
}
