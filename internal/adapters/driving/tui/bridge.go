package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// eventBridge hands bus events to the Bubbletea loop. Bus handlers run
// inside the mutating goroutine, which is often Update itself, so push must
// never block.
type eventBridge struct {
	mu     sync.Mutex
	queue  []domain.Event
	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newEventBridge() *eventBridge {
	return &eventBridge{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// push queues ev. It is registered as a bus handler.
func (b *eventBridge) push(ev domain.Event) {
	b.mu.Lock()
	b.queue = append(b.queue, ev)
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *eventBridge) drain() []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.queue
	b.queue = nil
	return events
}

// next waits for queued events and delivers them as one message.
// Update re-arms it after every delivery. The command yields nil once the
// bridge is closed.
func (b *eventBridge) next() tea.Cmd {
	return func() tea.Msg {
		for {
			if events := b.drain(); len(events) > 0 {
				return messages.EngineEvents{Events: events}
			}
			select {
			case <-b.notify:
			case <-b.done:
				return nil
			}
		}
	}
}

func (b *eventBridge) close() {
	b.once.Do(func() { close(b.done) })
}
