package domain

import "time"

// AgentState represents the derived status of an agent.
type AgentState string

const (
	AgentStateActive  AgentState = "active"
	AgentStateIdle    AgentState = "idle"
	AgentStateOffline AgentState = "offline"
)

// IsValid checks if the state is one of the allowed values.
func (s AgentState) IsValid() bool {
	switch s {
	case AgentStateActive, AgentStateIdle, AgentStateOffline:
		return true
	default:
		return false
	}
}

// Well-known agent slugs seeded at migration time. The status engine
// keys its per-agent rules on these.
const (
	SlugCoordinator = "arthur"
	SlugScout       = "zillow-bot"
	SlugContent     = "ghost"
	SlugOperations  = "admin"
)

// Agent represents an AI agent tracked by the command center.
// Status is derived server-side each refresh; agents never report in.
type Agent struct {
	ID           string
	Slug         string
	Name         string
	Role         string
	IdleTask     string
	ActiveTask   string
	State        AgentState
	CurrentTask  string
	LastActiveAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive returns true if the agent is currently in the active state.
func (a *Agent) IsActive() bool {
	return a.State == AgentStateActive
}
