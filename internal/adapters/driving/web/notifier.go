package web

import "sync"

// notifier broadcasts update pings to every connected event stream.
// Listeners receive an empty struct when the engine changed and re-read the
// snapshot themselves.
type notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
}

func newNotifier() *notifier {
	return &notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// subscribe returns a channel that receives pings when updates are available.
// The caller must call unsubscribe when done.
func (n *notifier) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// unsubscribe removes a listener channel and closes it.
func (n *notifier) unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// broadcast pings every listener without blocking. A listener with a
// pending ping already has an update queued and is skipped.
func (n *notifier) broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (n *notifier) len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
