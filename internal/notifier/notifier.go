// Package notifier fans out refresh signals to connected dashboards.
package notifier

import "sync"

// Notifier broadcasts a ping to every subscriber after a refresh
// completes. Subscribers re-query the store when pinged; the ping
// itself carries no data.
type Notifier struct {
	mu          sync.RWMutex
	subscribers map[chan struct{}]struct{}
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Subscribe registers a listener and returns its channel. Callers must
// Unsubscribe when done or the channel leaks.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subscribers[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.subscribers, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast pings every subscriber without blocking. A subscriber with
// an undrained channel keeps its pending ping and catches up then.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
