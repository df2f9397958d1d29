package provider

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// eventChannelCapacity bounds how many wallet changes can be queued ahead of the handlers.
const eventChannelCapacity = 100

type subscription struct {
	id      uint64
	handler EventHandler
}

// Dispatcher fans provider events out to subscribers. Events are delivered one at a
// time, in arrival order, and handlers of one event run in subscription order.
type Dispatcher struct {
	EventChannel chan Event
	logger       *zap.Logger

	mu       sync.RWMutex
	handlers map[EventName][]subscription
	nextId   uint64
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		EventChannel: make(chan Event, eventChannelCapacity),
		logger:       logger,
		handlers:     make(map[EventName][]subscription),
	}
}

// Subscribe registers handler for name. The returned function removes exactly this
// registration and may be called more than once.
func (d *Dispatcher) Subscribe(name EventName, handler EventHandler) func() {
	d.mu.Lock()
	d.nextId++
	id := d.nextId
	d.handlers[name] = append(d.handlers[name], subscription{id: id, handler: handler})
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		subs := d.handlers[name]
		for i, s := range subs {
			if s.id == id {
				d.handlers[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit queues an event for ListenToChannel, waiting for room until ctx is done.
func (d *Dispatcher) Emit(ctx context.Context, event Event) error {
	select {
	case d.EventChannel <- event:
		d.logger.Sugar().Debugw("Provider event queued", "event", event.Name)
		return nil
	case <-ctx.Done():
		d.logger.Sugar().Warnw("Context done before queueing provider event", "event", event.Name)
		return ctx.Err()
	}
}

// ListenToChannel delivers queued events until ctx is done.
func (d *Dispatcher) ListenToChannel(ctx context.Context) {
	for {
		select {
		case event := <-d.EventChannel:
			d.Dispatch(event)
		case <-ctx.Done():
			d.logger.Sugar().Debug("Provider event listener exiting due to context done")
			return
		}
	}
}

// Dispatch calls the current subscribers of event synchronously.
func (d *Dispatcher) Dispatch(event Event) {
	d.mu.RLock()
	subs := make([]subscription, len(d.handlers[event.Name]))
	copy(subs, d.handlers[event.Name])
	d.mu.RUnlock()

	d.logger.Sugar().Debugw("Dispatching provider event",
		"event", event.Name,
		"subscribers", len(subs),
	)
	for _, s := range subs {
		s.handler(event)
	}
}

// SubscriberCount reports how many handlers are registered for name.
func (d *Dispatcher) SubscriberCount(name EventName) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[name])
}
