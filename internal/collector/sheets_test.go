package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSheets(serverURL string) *Sheets {
	s := NewSheets(serverURL, "ya29-test", "sheet-1", "Transactions!A2:Z1000")
	s.now = func() time.Time {
		return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestSheets_Transactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer ya29-test", r.Header.Get("Authorization"))
		require.Contains(t, r.URL.Path, "/v4/spreadsheets/sheet-1/values/")

		fmt.Fprint(w, `{
			"values": [
				["02/08/2026", "Office Rent", "-2745.00", "Business Platinum", "Business", ""],
				["02/09/2026", "Consulting Payment", "1200.00", "Chase Business", "Income", ""],
				["01/15/2026", "Old charge", "-10.00", "Chase Sapphire", "Software", ""],
				["02/09/2026", "Too short row"],
				["not-a-date", "Bad row", "5.00", "Chase", "Other", ""],
				["02/07/2026", "Ad spend", "$1,450.00", "Business Platinum", "Marketing", ""]
			]
		}`)
	}))
	defer server.Close()

	transactions, err := newTestSheets(server.URL).Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, transactions, 3, "old, short, and malformed rows are skipped")

	// Newest first.
	require.Equal(t, "Consulting Payment", transactions[0].Description)
	require.Equal(t, 1200.0, transactions[0].Amount)
	require.Equal(t, "Office Rent", transactions[1].Description)
	require.Equal(t, -2745.0, transactions[1].Amount)
	require.Equal(t, "Ad spend", transactions[2].Description)
	require.Equal(t, 1450.0, transactions[2].Amount, "formatted amounts are cleaned")

	for _, tx := range transactions {
		require.NotEmpty(t, tx.Fingerprint)
	}
}

func TestSheets_Transactions_CapsAtFifty(t *testing.T) {
	var rows []string
	for i := 0; i < 60; i++ {
		rows = append(rows, fmt.Sprintf(`["02/09/2026", "tx %d", "%d.00", "Chase", "Other", ""]`, i, i+1))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"values": [%s]}`, strings.Join(rows, ","))
	}))
	defer server.Close()

	transactions, err := newTestSheets(server.URL).Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, transactions, 50)
}

func TestSheets_Transactions_NoToken(t *testing.T) {
	s := newTestSheets("http://unused")
	s.Token = ""

	_, err := s.Transactions(context.Background())
	require.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1200.00", 1200, false},
		{"-87.50", -87.5, false},
		{"$1,450.00", 1450, false},
		{"(250.00)", -250, false},
		{"", 0, false},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
