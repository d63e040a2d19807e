package watcher

import (
	"sync"
	"time"
)

// DebouncedEvent is one collapsed file system event.
type DebouncedEvent struct {
	Path string
	Op   EventOp
}

// EventOp is the kind of change observed on a path.
type EventOp int

const (
	OpCreate EventOp = iota
	OpWrite
	OpRemove
	OpRename
)

// String names the operation for logs.
func (op EventOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Debouncer batches file system events over a quiet interval. A save is
// rarely one event: editors emit create+write+rename bursts, and a large
// copy lands as many writes. Events for the same path inside the window
// collapse to the latest operation.
type Debouncer struct {
	interval time.Duration
	output   chan []DebouncedEvent

	mu     sync.Mutex
	events map[string]DebouncedEvent
	timer  *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		events:   make(map[string]DebouncedEvent),
		output:   make(chan []DebouncedEvent, 16),
	}
}

// Output returns the channel that receives batched events.
func (d *Debouncer) Output() <-chan []DebouncedEvent {
	return d.output
}

// Add records an event and restarts the quiet timer. A later event for the
// same path replaces the earlier one.
func (d *Debouncer) Add(path string, op EventOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.events[path] = DebouncedEvent{Path: path, Op: op}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// flush hands the accumulated batch to the output channel. The send happens
// outside the lock so a slow consumer cannot wedge Add.
func (d *Debouncer) flush() {
	d.mu.Lock()
	if len(d.events) == 0 {
		d.mu.Unlock()
		return
	}
	batch := make([]DebouncedEvent, 0, len(d.events))
	for _, event := range d.events {
		batch = append(batch, event)
	}
	d.events = make(map[string]DebouncedEvent)
	d.mu.Unlock()

	d.output <- batch
}
