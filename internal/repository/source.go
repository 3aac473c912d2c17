package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// SourceRepository handles database operations for source health records.
type SourceRepository struct {
	pool *pgxpool.Pool
}

// NewSourceRepository creates a new SourceRepository.
func NewSourceRepository(pool *pgxpool.Pool) *SourceRepository {
	return &SourceRepository{pool: pool}
}

// Upsert writes a source health record within a transaction, keyed by name.
func (r *SourceRepository) Upsert(ctx context.Context, tx pgx.Tx, source *domain.Source) error {
	query, args, err := psql.
		Insert("sources").
		Columns("name", "state", "last_error", "checked_at", "last_ok_at").
		Values(source.Name, source.State, source.LastError, source.CheckedAt, source.LastOKAt).
		Suffix(`ON CONFLICT (name) DO UPDATE SET
			state = EXCLUDED.state,
			last_error = EXCLUDED.last_error,
			checked_at = EXCLUDED.checked_at,
			last_ok_at = COALESCE(EXCLUDED.last_ok_at, sources.last_ok_at)`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Upsert query for source %s: %w", source.Name, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert source: %w", err)
	}

	return nil
}

// List retrieves all source health records ordered by name.
func (r *SourceRepository) List(ctx context.Context) ([]*domain.Source, error) {
	query, args, err := psql.
		Select("name", "state", "last_error", "checked_at", "last_ok_at").
		From("sources").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for sources: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var sources []*domain.Source
	for rows.Next() {
		var source domain.Source
		err := rows.Scan(
			&source.Name,
			&source.State,
			&source.LastError,
			&source.CheckedAt,
			&source.LastOKAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, &source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return sources, nil
}
