package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/hwkeys/internal/input/event"
)

// Metrics counts decoded events by kind.
type Metrics struct {
	committed  atomic.Uint64
	control    atomic.Uint64
	dead       atomic.Uint64
	notHandled atomic.Uint64
	malformed  atomic.Uint64

	decodeTotalNs atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent records one decoded event and the time spent decoding it.
func (m *Metrics) RecordEvent(ev event.Event, duration time.Duration) {
	m.decodeTotalNs.Add(duration.Nanoseconds())

	switch {
	case ev.IsControl():
		m.control.Add(1)
	case ev.IsCommittable():
		m.committed.Add(1)
	case ev.IsDead():
		m.dead.Add(1)
	default:
		m.notHandled.Add(1)
	}
}

// RecordMalformed records a signal the source could not parse.
func (m *Metrics) RecordMalformed() {
	m.malformed.Add(1)
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Committed  uint64
	Control    uint64
	Dead       uint64
	NotHandled uint64
	Malformed  uint64

	AvgDecode time.Duration
	Uptime    time.Duration
}

// Total returns the number of decoded events.
func (s MetricsSnapshot) Total() uint64 {
	return s.Committed + s.Control + s.Dead + s.NotHandled
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Committed:  m.committed.Load(),
		Control:    m.control.Load(),
		Dead:       m.dead.Load(),
		NotHandled: m.notHandled.Load(),
		Malformed:  m.malformed.Load(),
		Uptime:     time.Since(m.startTime),
	}
	if total := s.Total(); total > 0 {
		s.AvgDecode = time.Duration(m.decodeTotalNs.Load() / int64(total))
	}
	return s
}
