package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the event loop did during a session. It is logged
// at shutdown.
type Metrics struct {
	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	// Input handling
	inputCount atomic.Uint64

	// Command execution
	commandCount  atomic.Uint64
	commandFailed atomic.Uint64

	// External file changes
	fileEvents atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)

	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordInput records a handled input event.
func (m *Metrics) RecordInput() {
	m.inputCount.Add(1)
}

// RecordCommand records an executed command and whether it failed.
func (m *Metrics) RecordCommand(failed bool) {
	m.commandCount.Add(1)
	if failed {
		m.commandFailed.Add(1)
	}
}

// RecordFileEvent records an external change to the open file.
func (m *Metrics) RecordFileEvent() {
	m.fileEvents.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	renderCount := m.renderCount.Load()

	var avgRender time.Duration
	if renderCount > 0 {
		avgRender = time.Duration(m.renderTotalNs.Load() / int64(renderCount))
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		RenderCount:    renderCount,
		AvgRender:      avgRender,
		MaxRender:      time.Duration(m.renderMaxNs.Load()),
		InputCount:     m.inputCount.Load(),
		CommandCount:   m.commandCount.Load(),
		CommandsFailed: m.commandFailed.Load(),
		FileEvents:     m.fileEvents.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	RenderCount    uint64
	AvgRender      time.Duration
	MaxRender      time.Duration
	InputCount     uint64
	CommandCount   uint64
	CommandsFailed uint64
	FileEvents     uint64
}

// Fields returns the snapshot as logger fields.
func (s MetricsSnapshot) Fields() map[string]any {
	return map[string]any{
		"uptime":          s.Uptime.Round(time.Millisecond),
		"renders":         s.RenderCount,
		"avg_render":      s.AvgRender,
		"max_render":      s.MaxRender,
		"inputs":          s.InputCount,
		"commands":        s.CommandCount,
		"commands_failed": s.CommandsFailed,
		"file_events":     s.FileEvents,
	}
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
