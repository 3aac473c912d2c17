package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// Comms collects SMS counters from the comms provider. When no provider
// is configured it returns the standing estimated defaults so the
// dashboard's counters never go blank.
type Comms struct {
	URL   string
	Token string
	HTTP  *http.Client
}

// NewComms creates a comms collector. URL may be empty.
func NewComms(url, token string) *Comms {
	return &Comms{
		URL:   url,
		Token: token,
		HTTP:  &http.Client{Timeout: 30 * time.Second},
	}
}

// smsStatsResponse is the provider's counter payload.
type smsStatsResponse struct {
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
	ThisMonth int `json:"this_month"`
}

// SMSStats fetches SMS counters from the provider, or returns the
// estimated defaults when no provider is configured.
func (c *Comms) SMSStats(ctx context.Context) (domain.CommsStats, error) {
	if c.URL == "" || c.Token == "" {
		return domain.EstimatedSMSStats, nil
	}

	var stats smsStatsResponse
	if err := getJSON(ctx, c.HTTP, c.URL+"/stats/sms", c.Token, &stats); err != nil {
		return domain.CommsStats{}, fmt.Errorf("fetch sms stats: %w", err)
	}

	return domain.CommsStats{
		Today:     stats.Today,
		ThisWeek:  stats.ThisWeek,
		ThisMonth: stats.ThisMonth,
	}, nil
}

// EmailStats returns the estimated email counters. No mail source is
// wired; the counters are the coordinator's standing estimates.
func (c *Comms) EmailStats() domain.CommsStats {
	return domain.EstimatedEmailStats
}
