package services

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// subscription is a registered handler. An empty name receives every event.
type subscription struct {
	id      string
	name    domain.EventName
	handler driving.EventHandler
}

// Bus is a synchronous, in-process publish/subscribe channel.
//
// Publish runs every matching handler to completion, in registration
// order, before returning. There is no replay buffer: a handler registered
// after an event was published never sees it.
type Bus struct {
	mu   sync.RWMutex
	subs []*subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler for events named name.
// The returned function removes the handler and may be called repeatedly.
func (b *Bus) Subscribe(name domain.EventName, handler driving.EventHandler) func() {
	return b.add(name, handler)
}

// SubscribeAll registers handler for every event.
func (b *Bus) SubscribeAll(handler driving.EventHandler) func() {
	return b.add("", handler)
}

func (b *Bus) add(name domain.EventName, handler driving.EventHandler) func() {
	sub := &subscription{id: uuid.NewString(), name: name, handler: handler}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sub.id) })
	}
}

func (b *Bus) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			// Copy rather than shift in place: an in-flight Publish may hold the old slice.
			next := make([]*subscription, 0, len(b.subs)-1)
			next = append(next, b.subs[:i]...)
			b.subs = append(next, b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered handlers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers each event to every matching handler.
// Handlers added or removed during delivery take effect on the next event.
func (b *Bus) Publish(events ...domain.Event) {
	for _, ev := range events {
		b.mu.RLock()
		subs := b.subs
		b.mu.RUnlock()

		for _, s := range subs {
			if s.name != "" && s.name != ev.Name() {
				continue
			}
			b.deliver(s, ev)
		}
	}
}

// deliver runs one handler, isolating the bus from a panicking subscriber.
func (b *Bus) deliver(s *subscription, ev domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logger.Fields{
				"event":        ev.Name(),
				"event_id":     ev.EventID(),
				"subscription": s.id,
			}).Warn(fmt.Sprintf("bus subscriber panicked: %v", r))
			logger.Debug("subscriber stack:\n%s", debug.Stack())
		}
	}()
	s.handler(ev)
}

// newEventID returns a fresh event id.
func newEventID() string {
	return uuid.NewString()
}
