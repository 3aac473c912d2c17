package domain

import "time"

// DealRevenue holds the aggregate figures from the deals base.
type DealRevenue struct {
	TotalRevenue float64
	DealCount    int
	Last24h      float64
}

// CommsStats holds message counters for a comms channel.
// Estimated is set when the provider is not configured and the
// counters are the standing defaults rather than measured values.
type CommsStats struct {
	Today     int
	ThisWeek  int
	ThisMonth int
	Estimated bool
}

// Default comms counters used when no provider is wired.
var (
	EstimatedSMSStats   = CommsStats{Today: 50, ThisWeek: 350, ThisMonth: 1500, Estimated: true}
	EstimatedEmailStats = CommsStats{Today: 8, ThisWeek: 45, ThisMonth: 180, Estimated: true}
)

// MetricSet is one refresh worth of collected metrics.
type MetricSet struct {
	ID          string
	DealRevenue DealRevenue
	SMS         CommsStats
	Email       CommsStats
	CapturedAt  time.Time
}
