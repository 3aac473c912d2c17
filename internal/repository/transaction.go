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

// transactionColumns is the shared list of columns for transaction queries.
var transactionColumns = []string{
	"id", "occurred_on", "amount", "description", "account", "category",
	"fingerprint", "created_at",
}

// TransactionRepository handles database operations for ledger transactions.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// scanTransactions scans rows into a slice of Transaction structs.
func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(
			&tx.ID,
			&tx.Date,
			&tx.Amount,
			&tx.Description,
			&tx.Account,
			&tx.Category,
			&tx.Fingerprint,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return transactions, nil
}

// InsertNew stores collected transactions, skipping any whose
// fingerprint is already recorded. Returns the transactions that were
// actually inserted, for activity derivation.
func (r *TransactionRepository) InsertNew(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) ([]domain.Transaction, error) {
	var inserted []domain.Transaction
	for _, t := range transactions {
		if t.Fingerprint == "" {
			t.Fingerprint = t.ComputeFingerprint()
		}

		query, args, err := psql.
			Insert("transactions").
			Columns("id", "occurred_on", "amount", "description", "account", "category", "fingerprint").
			Values(uuid.NewString(), t.Date, t.Amount, t.Description, t.Account, t.Category, t.Fingerprint).
			Suffix("ON CONFLICT (fingerprint) DO NOTHING").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build InsertNew query: %w", err)
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
		if tag.RowsAffected() > 0 {
			inserted = append(inserted, t)
		}
	}

	return inserted, nil
}

// ListRecent retrieves transactions from the trailing number of days,
// newest first, capped at limit.
func (r *TransactionRepository) ListRecent(ctx context.Context, days, limit int) ([]*domain.Transaction, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := psql.
		Select(transactionColumns...).
		From("transactions").
		Where(sq.GtOrEq{"occurred_on": cutoff}).
		OrderBy("occurred_on DESC", "created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListRecent query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}

	return scanTransactions(rows)
}
