// Package events provides an in-process asynchronous event emitter.
//
// Listeners are registered per event name with On or for every event with
// OnAny. Emit returns immediately; each listener runs on its own goroutine
// and a panicking listener is recovered and logged.
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"evalgo.org/cookbook/internal/logging"
)

// Event names emitted by the service.
const (
	TaskCreated  = "task_created"
	TaskUpdated  = "task_updated"
	TaskDeleted  = "task_deleted"
	ExampleEvent = "example_event"
)

// Event is a named payload stamped with its emission time.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Listener handles an emitted event.
type Listener func(ctx context.Context, ev Event)

// Emitter dispatches events to registered listeners.
type Emitter struct {
	mu       sync.RWMutex
	named    map[string][]Listener
	wildcard []Listener
	wg       sync.WaitGroup
	closed   bool
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{named: make(map[string][]Listener)}
}

// On registers a listener for one event name.
func (e *Emitter) On(name string, l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.named[name] = append(e.named[name], l)
}

// OnAny registers a listener for every event.
func (e *Emitter) OnAny(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.wildcard = append(e.wildcard, l)
}

// ListenerCount returns the number of listeners that would receive name.
func (e *Emitter) ListenerCount(name string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.named[name]) + len(e.wildcard)
}

// Emit schedules every matching listener and returns without waiting. The
// listeners receive a context detached from ctx's cancellation so a finished
// request does not abort them. Emitting on a closed emitter is a no-op.
func (e *Emitter) Emit(ctx context.Context, name string, data interface{}) {
	ev := Event{Type: name, Timestamp: time.Now().UTC(), Data: data}

	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		logging.Warnf("event %s emitted after close, dropped", name)
		return
	}
	listeners := make([]Listener, 0, len(e.named[name])+len(e.wildcard))
	listeners = append(listeners, e.named[name]...)
	listeners = append(listeners, e.wildcard...)
	e.wg.Add(len(listeners))
	e.mu.RUnlock()

	lctx := context.WithoutCancel(ctx)
	for _, l := range listeners {
		go e.run(lctx, l, ev)
	}
}

func (e *Emitter) run(ctx context.Context, l Listener, ev Event) {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("listener for %s panicked: %v", ev.Type, r)
		}
	}()
	l(ctx, ev)
}

// Close stops accepting events and waits for running listeners.
func (e *Emitter) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.wg.Wait()
	return nil
}

// String implements fmt.Stringer for log output.
func (ev Event) String() string {
	return fmt.Sprintf("%s@%s", ev.Type, ev.Timestamp.Format(time.RFC3339))
}
