// Package collector pulls operational data from the command center's
// integration sources: the kanban board file, the Airtable deals base,
// the Tiller transaction sheet, and the comms provider.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	// maxAttempts bounds retries on transport errors and 5xx responses.
	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
)

// getJSON performs an authenticated GET and decodes the JSON response.
// Transport errors and 5xx responses are retried with exponential
// backoff; any other non-200 status fails immediately.
func getJSON(ctx context.Context, client *http.Client, url, token string, out any) error {
	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(initialBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := client.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("request failed: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("unexpected status %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %s", resp.Status)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}
