// Package config holds default values for flags and source locations.
package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultRefreshInterval is how often the scheduler runs a refresh.
	// Zero disables periodic refreshes.
	DefaultRefreshInterval = 5 * time.Minute

	// DefaultOfflineAfter is how long an agent may stay inactive before
	// check-agents marks it offline.
	DefaultOfflineAfter = 24 * time.Hour

	// DefaultKeepActivities is how long activity feed entries are retained.
	DefaultKeepActivities = 720 * time.Hour

	// DefaultAirtableBaseURL is the Airtable REST API endpoint.
	DefaultAirtableBaseURL = "https://api.airtable.com"

	// DefaultSheetsBaseURL is the Google Sheets values API endpoint.
	DefaultSheetsBaseURL = "https://sheets.googleapis.com"

	// Airtable bases and tables used by the deals and responses probes.
	DefaultDealsBase      = "appEmn0HdyfUfZ429"
	DefaultDealsTable     = "Offers"
	DefaultResponsesBase  = "appzBa1lPvu6zBZxv"
	DefaultResponsesTable = "Agent Responses"

	// Tiller transaction sheet defaults.
	DefaultSheetID    = "1pd1dt64gBni4vAWze9QzhVwsmFMcdBuufW6m_0n-OPw"
	DefaultSheetRange = "Transactions!A2:Z1000"
)

// DefaultBoardFile returns the default path of the kanban board file.
func DefaultBoardFile() string {
	return filepath.Join(homeDir(), ".openclaw", "workspace", "board", "board-data.json")
}

// DefaultExportFile returns the default path of the exported dashboard document.
func DefaultExportFile() string {
	return filepath.Join(homeDir(), ".openclaw", "workspace", "dashboard-data.json")
}

// DefaultAirtableSecretsFile returns the default path of the Airtable secrets.env file.
func DefaultAirtableSecretsFile() string {
	return filepath.Join(homeDir(), ".config", "airtable", "secrets.env")
}

// DefaultGoogleTokenFile returns the default path of the Google token JSON file.
func DefaultGoogleTokenFile() string {
	return filepath.Join(homeDir(), ".config", "google", "token.json")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
