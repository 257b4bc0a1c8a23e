package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces events into one delivery per quiet period.
// Each new event restarts the timer and ORs its operations into the
// pending event.
type debouncer struct {
	delay time.Duration
	emit  func(Event)

	mu      sync.Mutex
	pending *pendingEvent
	stopped bool
}

// pendingEvent tracks a debounced event.
type pendingEvent struct {
	event Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration, emit func(Event)) *debouncer {
	return &debouncer{delay: delay, emit: emit}
}

func (d *debouncer) add(event Event) {
	if d.delay <= 0 {
		d.emit(event)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if p := d.pending; p != nil {
		p.event.Op |= event.Op
		p.event.Timestamp = event.Timestamp
		p.timer.Reset(d.delay)
		return
	}
	d.pending = &pendingEvent{event: event}
	d.pending.timer = time.AfterFunc(d.delay, d.fire)
}

// fire delivers the pending event, if any.
func (d *debouncer) fire() {
	d.mu.Lock()
	p := d.pending
	d.pending = nil
	stopped := d.stopped
	d.mu.Unlock()

	if p != nil && !stopped {
		d.emit(p.event)
	}
}

// flush delivers the pending event immediately.
func (d *debouncer) flush() {
	d.mu.Lock()
	if d.pending != nil {
		d.pending.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

func (d *debouncer) hasPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.pending != nil {
		d.pending.timer.Stop()
		d.pending = nil
	}
}
