package app

import (
	"math"
	"sync/atomic"
	"time"
)

// Metrics tracks frame and input counters for one run.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	reloadCount atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.frameMinNs.Store(math.MaxInt64)
	return m
}

// RecordFrame records the time taken to paint one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records the time taken to handle one input event.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordReload counts a configuration reload.
func (m *Metrics) RecordReload() {
	m.reloadCount.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	eventCount := m.eventCount.Load()

	var avgFrameNs, avgEventNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}
	if eventCount > 0 {
		avgEventNs = m.eventTotalNs.Load() / int64(eventCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == math.MaxInt64 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		EventCount:     eventCount,
		AvgEventNs:     avgEventNs,
		ReloadCount:    m.reloadCount.Load(),
	}
}

// Log writes the snapshot at debug level.
func (m *Metrics) Log(logger *Logger) {
	s := m.Snapshot()
	logger.WithComponent("metrics").Debug(
		"frames=%d avg=%s fps=%.0f min=%s max=%s events=%d reloads=%d uptime=%s",
		s.FrameCount,
		time.Duration(s.AvgFrameTimeNs),
		s.AvgFPS(),
		time.Duration(s.MinFrameTimeNs),
		time.Duration(s.MaxFrameTimeNs),
		s.EventCount,
		s.ReloadCount,
		s.Uptime.Round(time.Millisecond),
	)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	EventCount     uint64
	AvgEventNs     int64
	ReloadCount    uint64
}

// AvgFPS returns the frame rate the average paint time would sustain.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrameTimeNs == 0 {
		return 0
	}
	return 1e9 / float64(s.AvgFrameTimeNs)
}

// Timer measures elapsed time.
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
