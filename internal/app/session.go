package app

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/hwkeys/internal/input/hardware"
)

// Session connects a Source, a Decoder and a Sink.
type Session struct {
	id      string
	decoder hardware.Decoder
	source  Source
	sink    Sink
	logger  *Logger
	metrics *Metrics
}

// NewSession creates a session with a fresh id. A nil logger discards logs.
func NewSession(decoder hardware.Decoder, source Source, sink Sink, logger *Logger) *Session {
	if logger == nil {
		logger = NullLogger
	}
	id := uuid.NewString()
	return &Session{
		id:      id,
		decoder: decoder,
		source:  source,
		sink:    sink,
		logger:  logger.WithComponent("session").WithField("session", id),
		metrics: NewMetrics(),
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Metrics returns the session's event counters.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// Run decodes signals until the source is exhausted, the user quits or
// ctx is cancelled. Those three endings return nil; malformed signals are
// logged and skipped.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session started")
	defer func() {
		snap := s.metrics.Snapshot()
		s.logger.Info("session finished: %d events (%d committed, %d control, %d dead, %d not handled, %d malformed), avg decode %v, uptime %v",
			snap.Total(), snap.Committed, snap.Control, snap.Dead, snap.NotHandled, snap.Malformed,
			snap.AvgDecode, snap.Uptime.Round(time.Millisecond))
	}()

	for {
		sig, err := s.source.Next(ctx)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, ErrQuit),
			errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		case errors.Is(err, ErrMalformedSignal):
			s.metrics.RecordMalformed()
			s.logger.Warn("skipping signal: %v", err)
			continue
		default:
			return err
		}

		start := time.Now()
		ev := s.decoder.Decode(sig)
		s.metrics.RecordEvent(ev, time.Since(start))
		s.logger.Debug("decoded %v => %v", sig, ev)

		if err := s.sink.Write(sig, ev); err != nil {
			return err
		}
	}
}
