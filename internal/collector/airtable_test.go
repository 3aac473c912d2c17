package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestAirtable(serverURL string) *Airtable {
	a := NewAirtable(AirtableConfig{
		BaseURL:        serverURL,
		Token:          "pat-test",
		DealsBase:      "appDeals",
		DealsTable:     "Offers",
		ResponsesBase:  "appResponses",
		ResponsesTable: "Agent Responses",
	})
	a.now = func() time.Time {
		return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func TestAirtable_DealRevenue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer pat-test", r.Header.Get("Authorization"))
		require.Equal(t, `{Select} = "In Contract"`, r.URL.Query().Get("filterByFormula"))

		fmt.Fprint(w, `{
			"records": [
				{"id": "rec1", "fields": {"Revenue": 10000, "Select": "In Contract", "In Contract": "2026-02-10T08:00:00.000Z"}},
				{"id": "rec2", "fields": {"Revenue": 25000, "Select": "In Contract", "In Contract": "2026-01-15T08:00:00.000Z"}},
				{"id": "rec3", "fields": {"Select": "In Contract"}}
			]
		}`)
	}))
	defer server.Close()

	revenue, err := newTestAirtable(server.URL).DealRevenue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 35000.0, revenue.TotalRevenue)
	require.Equal(t, 3, revenue.DealCount)
	require.Equal(t, 10000.0, revenue.Last24h, "only deals contracted in the trailing 24h count")
}

func TestAirtable_DealRevenue_Paginates(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("offset") == "" {
			fmt.Fprint(w, `{
				"records": [{"id": "rec1", "fields": {"Revenue": 100, "Select": "In Contract"}}],
				"offset": "page2"
			}`)
			return
		}
		require.Equal(t, "page2", r.URL.Query().Get("offset"))
		fmt.Fprint(w, `{
			"records": [{"id": "rec2", "fields": {"Revenue": 200, "Select": "In Contract"}}]
		}`)
	}))
	defer server.Close()

	revenue, err := newTestAirtable(server.URL).DealRevenue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, 300.0, revenue.TotalRevenue)
	require.Equal(t, 2, revenue.DealCount)
}

func TestAirtable_DealRevenue_NoToken(t *testing.T) {
	a := newTestAirtable("http://unused")
	a.Token = ""

	_, err := a.DealRevenue(context.Background())
	require.Error(t, err)
}

func TestAirtable_DealRevenue_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestAirtable(server.URL).DealRevenue(context.Background())
	require.Error(t, err)
}

func TestAirtable_DealRevenue_RetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"records": [{"id": "rec1", "fields": {"Revenue": 50, "Select": "In Contract"}}]}`)
	}))
	defer server.Close()

	revenue, err := newTestAirtable(server.URL).DealRevenue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, 50.0, revenue.TotalRevenue)
}

func TestAirtable_RecentResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"records present", `{"records": [{"id": "rec1", "fields": {}}]}`, true},
		{"no records", `{"records": []}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Contains(t, r.URL.Query().Get("filterByFormula"), "DATETIME_DIFF(NOW(), {Created}, 'hours') <= 2")
				require.Equal(t, "1", r.URL.Query().Get("maxRecords"))
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			active, err := newTestAirtable(server.URL).RecentResponses(context.Background(), 2*time.Hour)
			require.NoError(t, err)
			require.Equal(t, tt.want, active)
		})
	}
}
