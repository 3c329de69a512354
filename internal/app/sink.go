package app

import (
	"io"
	"sync"

	"github.com/dshills/hwkeys/internal/input/event"
	"github.com/dshills/hwkeys/internal/input/hardware"
)

// Sink consumes decoded events.
type Sink interface {
	Write(sig hardware.Signal, ev event.Event) error
}

// WriterSink writes one formatted line per event to an io.Writer.
type WriterSink struct {
	mu     sync.Mutex
	w      io.Writer
	format Formatter
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer, format Formatter) *WriterSink {
	return &WriterSink{w: w, format: format}
}

// Write formats and writes the event.
func (s *WriterSink) Write(sig hardware.Signal, ev event.Event) error {
	line, err := s.format(sig, ev)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, line+"\n"); err != nil {
		return NewOperationError("write", "event", err)
	}
	return nil
}
