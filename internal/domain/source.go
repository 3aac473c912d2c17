package domain

import "time"

// SourceName identifies an integration source.
type SourceName string

const (
	SourceBoard    SourceName = "board"
	SourceAirtable SourceName = "airtable"
	SourceSheets   SourceName = "sheets"
	SourceComms    SourceName = "comms"
)

// SourceState represents the health of an integration source.
type SourceState string

const (
	// SourceStateOK means the last collection succeeded.
	SourceStateOK SourceState = "ok"
	// SourceStateDegraded means collection failed but previously stored
	// data is still being served.
	SourceStateDegraded SourceState = "degraded"
	// SourceStateError means collection failed and nothing stored can
	// stand in for it.
	SourceStateError SourceState = "error"
)

// Source is the health record of one integration source.
type Source struct {
	Name      SourceName
	State     SourceState
	LastError string
	CheckedAt time.Time
	LastOKAt  *time.Time
}

// IsHealthy returns true when the last collection succeeded.
func (s *Source) IsHealthy() bool {
	return s.State == SourceStateOK
}
