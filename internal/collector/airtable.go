package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// Airtable collects deal revenue from the Offers table and probes the
// Agent Responses table for recent activity.
type Airtable struct {
	BaseURL        string
	Token          string
	DealsBase      string
	DealsTable     string
	ResponsesBase  string
	ResponsesTable string
	HTTP           *http.Client

	// now is injected for tests; defaults to time.Now.
	now func() time.Time
}

// AirtableConfig holds construction parameters for the Airtable collector.
type AirtableConfig struct {
	BaseURL        string
	Token          string
	DealsBase      string
	DealsTable     string
	ResponsesBase  string
	ResponsesTable string
}

// NewAirtable creates an Airtable collector.
func NewAirtable(cfg AirtableConfig) *Airtable {
	return &Airtable{
		BaseURL:        cfg.BaseURL,
		Token:          cfg.Token,
		DealsBase:      cfg.DealsBase,
		DealsTable:     cfg.DealsTable,
		ResponsesBase:  cfg.ResponsesBase,
		ResponsesTable: cfg.ResponsesTable,
		HTTP:           &http.Client{Timeout: 30 * time.Second},
		now:            time.Now,
	}
}

// airtableRecords is a single page of an Airtable list response.
type airtableRecords struct {
	Records []airtableRecord `json:"records"`
	Offset  string           `json:"offset"`
}

type airtableRecord struct {
	ID     string         `json:"id"`
	Fields airtableFields `json:"fields"`
}

type airtableFields struct {
	Revenue float64 `json:"Revenue"`
	Select  string  `json:"Select"`
	// InContract is the date the deal went under contract.
	InContract string `json:"In Contract"`
}

// DealRevenue sums revenue across all deals currently in contract and
// separately tallies revenue contracted in the trailing 24 hours.
func (a *Airtable) DealRevenue(ctx context.Context) (domain.DealRevenue, error) {
	var result domain.DealRevenue
	if a.Token == "" {
		return result, fmt.Errorf("%w: no airtable token configured", domain.ErrSourceUnavailable)
	}

	query := url.Values{}
	query.Set("filterByFormula", `{Select} = "In Contract"`)
	query.Add("fields[]", "Revenue")
	query.Add("fields[]", "Select")
	query.Add("fields[]", "In Contract")

	cutoff := a.now().Add(-24 * time.Hour)

	offset := ""
	for {
		if offset != "" {
			query.Set("offset", offset)
		}
		endpoint := fmt.Sprintf("%s/v0/%s/%s?%s",
			a.BaseURL, a.DealsBase, url.PathEscape(a.DealsTable), query.Encode())

		var page airtableRecords
		if err := getJSON(ctx, a.HTTP, endpoint, a.Token, &page); err != nil {
			return domain.DealRevenue{}, fmt.Errorf("fetch deals: %w", err)
		}

		for _, record := range page.Records {
			result.DealCount++
			result.TotalRevenue += record.Fields.Revenue

			if record.Fields.InContract == "" {
				continue
			}
			contracted, err := parseAirtableTime(record.Fields.InContract)
			if err != nil {
				continue
			}
			if contracted.After(cutoff) {
				result.Last24h += record.Fields.Revenue
			}
		}

		if page.Offset == "" {
			return result, nil
		}
		offset = page.Offset
	}
}

// RecentResponses reports whether the responses table has records
// created within the given window. Used by the agent status engine.
func (a *Airtable) RecentResponses(ctx context.Context, window time.Duration) (bool, error) {
	if a.Token == "" {
		return false, fmt.Errorf("%w: no airtable token configured", domain.ErrSourceUnavailable)
	}

	hours := int(window.Hours())
	query := url.Values{}
	query.Set("filterByFormula", fmt.Sprintf("DATETIME_DIFF(NOW(), {Created}, 'hours') <= %d", hours))
	query.Set("maxRecords", "1")

	endpoint := fmt.Sprintf("%s/v0/%s/%s?%s",
		a.BaseURL, a.ResponsesBase, url.PathEscape(a.ResponsesTable), query.Encode())

	var page airtableRecords
	if err := getJSON(ctx, a.HTTP, endpoint, a.Token, &page); err != nil {
		return false, fmt.Errorf("fetch responses: %w", err)
	}

	return len(page.Records) > 0, nil
}

// parseAirtableTime accepts the RFC3339 timestamps Airtable returns,
// including the trailing-Z form, plus date-only fields.
func parseAirtableTime(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(value)); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
