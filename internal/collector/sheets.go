package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

const (
	// transactionWindow is how far back ledger entries are kept.
	transactionWindow = 7 * 24 * time.Hour
	// maxTransactions caps the number of entries per collection.
	maxTransactions = 50
	// minSheetColumns is the minimum row width for a usable entry.
	minSheetColumns = 6
)

// Sheets collects ledger transactions from the Tiller sheet through
// the Google Sheets values API.
type Sheets struct {
	BaseURL   string
	Token     string
	SheetID   string
	ReadRange string
	HTTP      *http.Client

	now func() time.Time
}

// NewSheets creates a Sheets collector.
func NewSheets(baseURL, token, sheetID, readRange string) *Sheets {
	return &Sheets{
		BaseURL:   baseURL,
		Token:     token,
		SheetID:   sheetID,
		ReadRange: readRange,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		now:       time.Now,
	}
}

// sheetValues is the values API response shape.
type sheetValues struct {
	Values [][]string `json:"values"`
}

// Transactions fetches the transaction range and keeps entries from the
// trailing seven days, newest first, capped at fifty.
// Rows narrower than six cells or with unparseable dates are skipped,
// matching how the sheet mixes pending and malformed rows in place.
func (s *Sheets) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	if s.Token == "" {
		return nil, fmt.Errorf("%w: no google token configured", domain.ErrSourceUnavailable)
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		s.BaseURL, s.SheetID, url.PathEscape(s.ReadRange))

	var sheet sheetValues
	if err := getJSON(ctx, s.HTTP, endpoint, s.Token, &sheet); err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	cutoff := s.now().Add(-transactionWindow)

	var transactions []domain.Transaction
	for _, row := range sheet.Values {
		if len(row) < minSheetColumns {
			continue
		}

		date, err := time.Parse("01/02/2006", strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		if !date.After(cutoff) {
			continue
		}

		amount, err := parseAmount(row[2])
		if err != nil {
			continue
		}

		tx := domain.Transaction{
			Date:        date,
			Amount:      amount,
			Description: strings.TrimSpace(row[1]),
			Account:     strings.TrimSpace(row[3]),
			Category:    strings.TrimSpace(row[4]),
		}
		tx.Fingerprint = tx.ComputeFingerprint()
		transactions = append(transactions, tx)
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	if len(transactions) > maxTransactions {
		transactions = transactions[:maxTransactions]
	}

	return transactions, nil
}

// parseAmount handles the sheet's formatted amounts: currency signs,
// thousands separators, and parenthesized negatives.
func parseAmount(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, nil
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", value, err)
	}
	if negative {
		amount = -amount
	}
	return amount, nil
}
