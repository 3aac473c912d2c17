package collector_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxalchemist/cmdcenter/internal/collector"
	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

func TestComms_SMSStats_Unconfigured(t *testing.T) {
	stats, err := collector.NewComms("", "").SMSStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.EstimatedSMSStats, stats)
	require.True(t, stats.Estimated)
}

func TestComms_SMSStats_Provider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stats/sms", r.URL.Path)
		require.Equal(t, "Bearer ghl-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"today": 62, "this_week": 410, "this_month": 1710}`)
	}))
	defer server.Close()

	stats, err := collector.NewComms(server.URL, "ghl-token").SMSStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 62, stats.Today)
	require.Equal(t, 410, stats.ThisWeek)
	require.Equal(t, 1710, stats.ThisMonth)
	require.False(t, stats.Estimated)
}

func TestComms_SMSStats_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := collector.NewComms(server.URL, "ghl-token").SMSStats(context.Background())
	require.Error(t, err)
}

func TestComms_EmailStats(t *testing.T) {
	stats := collector.NewComms("", "").EmailStats()
	require.Equal(t, domain.EstimatedEmailStats, stats)
	require.True(t, stats.Estimated)
}
