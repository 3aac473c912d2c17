package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Agent errors
	ErrAgentNotFound = errors.New("agent not found")

	// Board errors
	ErrTaskNotFound = errors.New("board task not found")

	// Source errors
	ErrSourceNotFound    = errors.New("source not found")
	ErrSourceUnavailable = errors.New("source unavailable")

	// Refresh errors
	ErrRefreshInProgress = errors.New("refresh already in progress")
	ErrAllSourcesFailed  = errors.New("all sources failed")

	// Metrics errors
	ErrNoMetrics = errors.New("no metric snapshot recorded yet")

	// Auth errors
	ErrInvalidToken = errors.New("invalid authentication token")

	// Validation errors
	ErrInvalidPeriod       = errors.New("invalid stats period")
	ErrInvalidColumn       = errors.New("invalid task column")
	ErrInvalidActivityType = errors.New("invalid activity type")
)
