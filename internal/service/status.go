package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// responsesProbeWindow is how far back the admin probe looks for
// freshly created response records.
const responsesProbeWindow = 2 * time.Hour

// ResponsesProbe reports whether the responses table saw new records
// within the window. Implemented by the Airtable collector.
type ResponsesProbe interface {
	RecentResponses(ctx context.Context, window time.Duration) (bool, error)
}

// StatusEngine derives agent states each refresh. Agents never report
// in; every state here is inferred from the clock and from observable
// side effects of the agents' work.
type StatusEngine struct {
	probe ResponsesProbe

	// now is injected for tests; defaults to time.Now.
	now func() time.Time
}

// NewStatusEngine creates a StatusEngine backed by the given probe.
func NewStatusEngine(probe ResponsesProbe) *StatusEngine {
	return &StatusEngine{
		probe: probe,
		now:   time.Now,
	}
}

// StatusDecision is the engine's verdict for one agent.
type StatusDecision struct {
	Slug        string
	State       domain.AgentState
	CurrentTask string
	// Changed is set when the decision differs from the stored state,
	// meaning it needs to be written back and announced on the feed.
	Changed bool
}

// Evaluate derives a state for every agent and returns the decisions
// alongside the feed entries the transitions produce. A probe failure
// leaves the probed agent in its previous state rather than guessing.
func (e *StatusEngine) Evaluate(ctx context.Context, agents []*domain.Agent) ([]StatusDecision, []domain.Activity) {
	now := e.now()

	decisions := make([]StatusDecision, 0, len(agents))
	var activities []domain.Activity

	previouslyActive := 0
	nowActive := 0

	for _, agent := range agents {
		if agent.IsActive() {
			previouslyActive++
		}

		active, known := e.deriveActive(ctx, agent, now)
		if !known {
			// Keep whatever we last knew.
			active = agent.IsActive()
		}

		decision := StatusDecision{Slug: agent.Slug}
		if active {
			decision.State = domain.AgentStateActive
			decision.CurrentTask = agent.ActiveTask
			nowActive++
		} else {
			decision.State = domain.AgentStateIdle
			decision.CurrentTask = agent.IdleTask
		}
		decision.Changed = decision.State != agent.State || decision.CurrentTask != agent.CurrentTask

		if decision.State != agent.State {
			slug := agent.Slug
			activities = append(activities, domain.Activity{
				Type:        domain.ActivityTypeStatus,
				Description: statusLine(agent, decision),
				AgentSlug:   &slug,
				OccurredAt:  now,
			})
		}

		decisions = append(decisions, decision)
	}

	if nowActive != previouslyActive {
		coordinator := domain.SlugCoordinator
		activities = append(activities, domain.Activity{
			Type:        domain.ActivityTypeCoord,
			Description: fmt.Sprintf("Coordinating operations: %d of %d agents active", nowActive, len(agents)),
			AgentSlug:   &coordinator,
			OccurredAt:  now,
		})
	}

	return decisions, activities
}

// deriveActive applies the per-agent rule. The second return value is
// false when the rule could not be evaluated (probe failure) and the
// previous state should stand.
func (e *StatusEngine) deriveActive(ctx context.Context, agent *domain.Agent, now time.Time) (active, known bool) {
	switch agent.Slug {
	case domain.SlugCoordinator:
		return true, true
	case domain.SlugScout:
		hour := now.Hour()
		return hour >= 6 && hour <= 18, true
	case domain.SlugContent:
		hour := now.Hour()
		return hour >= 9 && hour <= 17, true
	case domain.SlugOperations:
		if e.probe == nil {
			return false, false
		}
		recent, err := e.probe.RecentResponses(ctx, responsesProbeWindow)
		if err != nil {
			slog.Warn("responses probe failed, keeping previous state",
				"agent", agent.Slug, "error", err)
			return false, false
		}
		return recent, true
	default:
		return false, true
	}
}

// statusLine formats the feed entry for one state transition.
func statusLine(agent *domain.Agent, decision StatusDecision) string {
	if decision.State == domain.AgentStateActive {
		return fmt.Sprintf("%s is now active: %s", agent.Name, decision.CurrentTask)
	}
	return fmt.Sprintf("%s went idle: %s", agent.Name, decision.CurrentTask)
}
