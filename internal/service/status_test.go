package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
)

// stubProbe is a canned ResponsesProbe.
type stubProbe struct {
	recent bool
	err    error
}

func (p *stubProbe) RecentResponses(_ context.Context, _ time.Duration) (bool, error) {
	return p.recent, p.err
}

func testAgents() []*domain.Agent {
	return []*domain.Agent{
		{
			Slug: domain.SlugOperations, Name: "Admin",
			IdleTask: "Managing Asana Pipeline", ActiveTask: "Processing New Responses",
			State: domain.AgentStateIdle, CurrentTask: "Managing Asana Pipeline",
		},
		{
			Slug: domain.SlugCoordinator, Name: "Arthur",
			IdleTask: "Standing By", ActiveTask: "Coordinating Operations",
			State: domain.AgentStateActive, CurrentTask: "Coordinating Operations",
		},
		{
			Slug: domain.SlugContent, Name: "Ghost",
			IdleTask: "Preparing Content Queue", ActiveTask: "Writing Social Content",
			State: domain.AgentStateIdle, CurrentTask: "Preparing Content Queue",
		},
		{
			Slug: domain.SlugScout, Name: "Zillow Bot",
			IdleTask: "Monitoring New Listings", ActiveTask: "Scanning Detroit Properties",
			State: domain.AgentStateIdle, CurrentTask: "Monitoring New Listings",
		},
	}
}

func engineAt(hour int, probe ResponsesProbe) *StatusEngine {
	engine := NewStatusEngine(probe)
	engine.now = func() time.Time {
		return time.Date(2025, 6, 2, hour, 30, 0, 0, time.UTC)
	}
	return engine
}

func decisionFor(t *testing.T, decisions []StatusDecision, slug string) StatusDecision {
	t.Helper()
	for _, d := range decisions {
		if d.Slug == slug {
			return d
		}
	}
	t.Fatalf("no decision for %s", slug)
	return StatusDecision{}
}

func TestStatusEngineBusinessHours(t *testing.T) {
	tests := []struct {
		name          string
		hour          int
		scoutActive   bool
		contentActive bool
	}{
		{name: "before scout window", hour: 5, scoutActive: false, contentActive: false},
		{name: "scout only", hour: 7, scoutActive: true, contentActive: false},
		{name: "both windows", hour: 12, scoutActive: true, contentActive: true},
		{name: "content edge", hour: 17, scoutActive: true, contentActive: true},
		{name: "scout edge", hour: 18, scoutActive: true, contentActive: false},
		{name: "after hours", hour: 22, scoutActive: false, contentActive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := engineAt(tt.hour, &stubProbe{})
			decisions, _ := engine.Evaluate(context.Background(), testAgents())

			scout := decisionFor(t, decisions, domain.SlugScout)
			if tt.scoutActive {
				require.Equal(t, domain.AgentStateActive, scout.State)
				require.Equal(t, "Scanning Detroit Properties", scout.CurrentTask)
			} else {
				require.Equal(t, domain.AgentStateIdle, scout.State)
				require.Equal(t, "Monitoring New Listings", scout.CurrentTask)
			}

			content := decisionFor(t, decisions, domain.SlugContent)
			if tt.contentActive {
				require.Equal(t, domain.AgentStateActive, content.State)
			} else {
				require.Equal(t, domain.AgentStateIdle, content.State)
			}

			// The coordinator never sleeps.
			coordinator := decisionFor(t, decisions, domain.SlugCoordinator)
			require.Equal(t, domain.AgentStateActive, coordinator.State)
		})
	}
}

func TestStatusEngineProbeDrivesOperations(t *testing.T) {
	engine := engineAt(12, &stubProbe{recent: true})
	decisions, _ := engine.Evaluate(context.Background(), testAgents())

	ops := decisionFor(t, decisions, domain.SlugOperations)
	require.Equal(t, domain.AgentStateActive, ops.State)
	require.Equal(t, "Processing New Responses", ops.CurrentTask)
	require.True(t, ops.Changed)
}

func TestStatusEngineProbeFailureKeepsPreviousState(t *testing.T) {
	agents := testAgents()
	agents[0].State = domain.AgentStateActive
	agents[0].CurrentTask = agents[0].ActiveTask

	engine := engineAt(12, &stubProbe{err: errors.New("airtable down")})
	decisions, _ := engine.Evaluate(context.Background(), agents)

	ops := decisionFor(t, decisions, domain.SlugOperations)
	require.Equal(t, domain.AgentStateActive, ops.State)
	require.False(t, ops.Changed)
}

func TestStatusEngineEmitsTransitionActivities(t *testing.T) {
	// At noon the scout and content agents both wake up, and the
	// active head count changes, so the coordinator summarizes.
	engine := engineAt(12, &stubProbe{recent: false})
	_, activities := engine.Evaluate(context.Background(), testAgents())

	var statusCount, coordCount int
	for _, activity := range activities {
		switch activity.Type {
		case domain.ActivityTypeStatus:
			statusCount++
			require.NotNil(t, activity.AgentSlug)
		case domain.ActivityTypeCoord:
			coordCount++
			require.Equal(t, "Coordinating operations: 3 of 4 agents active", activity.Description)
		}
	}
	require.Equal(t, 2, statusCount)
	require.Equal(t, 1, coordCount)
}

func TestStatusEngineNoChangeNoActivities(t *testing.T) {
	agents := testAgents()
	// Stored states already match what a 3am evaluation derives.
	for _, agent := range agents {
		if agent.Slug == domain.SlugCoordinator {
			continue
		}
		agent.State = domain.AgentStateIdle
		agent.CurrentTask = agent.IdleTask
	}

	engine := engineAt(3, &stubProbe{recent: false})
	decisions, activities := engine.Evaluate(context.Background(), agents)

	require.Empty(t, activities)
	for _, decision := range decisions {
		require.False(t, decision.Changed, "agent %s", decision.Slug)
	}
}
