package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Transaction represents a single ledger entry from the transaction sheet.
type Transaction struct {
	ID          string
	Date        time.Time
	Amount      float64
	Description string
	Account     string
	Category    string
	Fingerprint string
	CreatedAt   time.Time
}

// ComputeFingerprint derives the dedup key for a transaction.
// Two rows with the same date, amount, description and account are
// considered the same transaction across refreshes.
func (t *Transaction) ComputeFingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%.2f|%s|%s",
		t.Date.Format("2006-01-02"), t.Amount, t.Description, t.Account)))
	return hex.EncodeToString(sum[:])
}

// IsIncome returns true for positive-amount entries.
func (t *Transaction) IsIncome() bool {
	return t.Amount > 0
}
