package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// metricColumns is the shared list of columns for snapshot queries.
var metricColumns = []string{
	"id", "total_revenue", "deal_count", "revenue_last_24h",
	"sms_today", "sms_week", "sms_month", "sms_estimated",
	"email_today", "email_week", "email_month", "email_estimated",
	"captured_at",
}

// MetricsRepository handles database operations for metric snapshots.
type MetricsRepository struct {
	pool *pgxpool.Pool
}

// NewMetricsRepository creates a new MetricsRepository.
func NewMetricsRepository(pool *pgxpool.Pool) *MetricsRepository {
	return &MetricsRepository{pool: pool}
}

// scanMetricSet scans a single row into a MetricSet struct.
func scanMetricSet(row pgx.Row) (*domain.MetricSet, error) {
	var ms domain.MetricSet
	err := row.Scan(
		&ms.ID,
		&ms.DealRevenue.TotalRevenue,
		&ms.DealRevenue.DealCount,
		&ms.DealRevenue.Last24h,
		&ms.SMS.Today,
		&ms.SMS.ThisWeek,
		&ms.SMS.ThisMonth,
		&ms.SMS.Estimated,
		&ms.Email.Today,
		&ms.Email.ThisWeek,
		&ms.Email.ThisMonth,
		&ms.Email.Estimated,
		&ms.CapturedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoMetrics
		}
		return nil, fmt.Errorf("scan metric snapshot: %w", err)
	}
	return &ms, nil
}

// InsertSnapshot records one refresh worth of metrics within a transaction.
func (r *MetricsRepository) InsertSnapshot(ctx context.Context, tx pgx.Tx, ms *domain.MetricSet) error {
	if ms.ID == "" {
		ms.ID = uuid.NewString()
	}

	query, args, err := psql.
		Insert("metric_snapshots").
		Columns(
			"id", "total_revenue", "deal_count", "revenue_last_24h",
			"sms_today", "sms_week", "sms_month", "sms_estimated",
			"email_today", "email_week", "email_month", "email_estimated",
		).
		Values(
			ms.ID,
			ms.DealRevenue.TotalRevenue,
			ms.DealRevenue.DealCount,
			ms.DealRevenue.Last24h,
			ms.SMS.Today,
			ms.SMS.ThisWeek,
			ms.SMS.ThisMonth,
			ms.SMS.Estimated,
			ms.Email.Today,
			ms.Email.ThisWeek,
			ms.Email.ThisMonth,
			ms.Email.Estimated,
		).
		Suffix("RETURNING captured_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build InsertSnapshot query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&ms.CapturedAt); err != nil {
		return fmt.Errorf("insert metric snapshot: %w", err)
	}

	return nil
}

// Latest retrieves the most recent metric snapshot.
// Returns domain.ErrNoMetrics when no refresh has recorded one yet.
func (r *MetricsRepository) Latest(ctx context.Context) (*domain.MetricSet, error) {
	query, args, err := psql.
		Select(metricColumns...).
		From("metric_snapshots").
		OrderBy("captured_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Latest query: %w", err)
	}

	return scanMetricSet(r.pool.QueryRow(ctx, query, args...))
}

// FirstSince retrieves the earliest snapshot captured at or after the
// given time, for trend computation over a stats period.
func (r *MetricsRepository) FirstSince(ctx context.Context, since time.Time) (*domain.MetricSet, error) {
	qb := psql.
		Select(metricColumns...).
		From("metric_snapshots")
	if !since.IsZero() {
		qb = qb.Where("captured_at >= ?", since)
	}
	query, args, err := qb.
		OrderBy("captured_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FirstSince query: %w", err)
	}

	return scanMetricSet(r.pool.QueryRow(ctx, query, args...))
}
