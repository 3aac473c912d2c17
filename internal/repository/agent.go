package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// agentColumns is the shared list of columns for agent queries.
var agentColumns = []string{
	"id", "slug", "name", "role", "idle_task", "active_task",
	"state", "current_task", "last_active_at", "created_at", "updated_at",
}

// AgentRepository handles database operations for agents.
type AgentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository creates a new AgentRepository.
func NewAgentRepository(pool *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{pool: pool}
}

// scanAgent scans a single row into an Agent struct.
func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var agent domain.Agent
	err := row.Scan(
		&agent.ID,
		&agent.Slug,
		&agent.Name,
		&agent.Role,
		&agent.IdleTask,
		&agent.ActiveTask,
		&agent.State,
		&agent.CurrentTask,
		&agent.LastActiveAt,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, fmt.Errorf("scan agent: %w", err)
	}
	return &agent, nil
}

// List retrieves all registered agents ordered by slug.
func (r *AgentRepository) List(ctx context.Context) ([]*domain.Agent, error) {
	query, args, err := psql.
		Select(agentColumns...).
		From("agents").
		OrderBy("slug").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for agents: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	defer rows.Close()

	var agents []*domain.Agent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return agents, nil
}

// GetBySlug retrieves an agent by slug.
func (r *AgentRepository) GetBySlug(ctx context.Context, slug string) (*domain.Agent, error) {
	query, args, err := psql.
		Select(agentColumns...).
		From("agents").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetBySlug query for agent %s: %w", slug, err)
	}

	return scanAgent(r.pool.QueryRow(ctx, query, args...))
}

// UpdateState writes a derived state for an agent within a transaction.
// Active agents get a fresh last_active_at.
func (r *AgentRepository) UpdateState(
	ctx context.Context,
	tx pgx.Tx,
	slug string,
	state domain.AgentState,
	currentTask string,
) error {
	qb := psql.
		Update("agents").
		Set("state", state).
		Set("current_task", currentTask).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"slug": slug})

	if state == domain.AgentStateActive {
		qb = qb.Set("last_active_at", sq.Expr("NOW()"))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateState query for agent %s: %w", slug, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update agent state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAgentNotFound
	}

	return nil
}

// MarkOfflineStale marks agents offline whose last activity predates the
// cutoff. Agents that never went active are measured from creation.
// Returns the number of agents transitioned.
func (r *AgentRepository) MarkOfflineStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.
		Update("agents").
		Set("state", domain.AgentStateOffline).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.NotEq{"state": domain.AgentStateOffline}).
		Where(sq.Lt{"COALESCE(last_active_at, created_at)": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build MarkOfflineStale query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark stale agents offline: %w", err)
	}

	return tag.RowsAffected(), nil
}
