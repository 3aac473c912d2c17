package notifier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxalchemist/cmdcenter/internal/notifier"
)

func TestNotifier_Broadcast(t *testing.T) {
	n := notifier.New()

	first := n.Subscribe()
	second := n.Subscribe()
	defer n.Unsubscribe(second)

	n.Broadcast()

	select {
	case <-first:
	default:
		t.Fatal("first subscriber did not receive ping")
	}
	select {
	case <-second:
	default:
		t.Fatal("second subscriber did not receive ping")
	}

	n.Unsubscribe(first)
	_, open := <-first
	require.False(t, open, "unsubscribed channel must be closed")
}

func TestNotifier_BroadcastNonBlocking(t *testing.T) {
	n := notifier.New()

	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	// A subscriber that never drains must not block broadcasters.
	n.Broadcast()
	n.Broadcast()
	n.Broadcast()

	<-ch
	select {
	case <-ch:
		t.Fatal("pings must coalesce to one pending signal")
	default:
	}
}

func TestNotifier_BroadcastWithoutSubscribers(t *testing.T) {
	require.NotPanics(t, func() {
		notifier.New().Broadcast()
	})
}
