package app

import (
	"context"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hwkeys/internal/input/event"
	"github.com/dshills/hwkeys/internal/input/hardware"
)

// TerminalSource reads key events from a tcell screen.
// Ctrl+C ends the session with ErrQuit.
type TerminalSource struct {
	screen     tcell.Screen
	translator *hardware.TcellTranslator
}

// NewTerminalSource creates a source for an initialized screen.
func NewTerminalSource(screen tcell.Screen, translator *hardware.TcellTranslator) *TerminalSource {
	return &TerminalSource{screen: screen, translator: translator}
}

// Next blocks until the next key event. Cancelling ctx wakes the poll.
func (s *TerminalSource) Next(ctx context.Context) (hardware.Signal, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			return hardware.Signal{}, err
		}

		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return hardware.Signal{}, io.EOF
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return hardware.Signal{}, ErrQuit
			}
			return s.translator.Translate(ev), nil
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// ScreenSink shows the most recent events on a tcell screen, newest last.
type ScreenSink struct {
	mu     sync.Mutex
	screen tcell.Screen
	format Formatter
	header string
	lines  []string
}

// NewScreenSink creates a sink drawing on screen below a header line.
func NewScreenSink(screen tcell.Screen, format Formatter, header string) *ScreenSink {
	s := &ScreenSink{screen: screen, format: format, header: header}
	s.mu.Lock()
	s.draw()
	s.mu.Unlock()
	return s
}

// Write formats the event and redraws the screen.
func (s *ScreenSink) Write(sig hardware.Signal, ev event.Event) error {
	line, err := s.format(sig, ev)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, height := s.screen.Size()
	s.lines = append(s.lines, line)
	if keep := height - 1; keep > 0 && len(s.lines) > keep {
		s.lines = s.lines[len(s.lines)-keep:]
	}
	s.draw()
	return nil
}

// Lines returns the lines currently shown below the header.
func (s *ScreenSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func (s *ScreenSink) draw() {
	s.screen.Clear()
	s.drawLine(0, s.header, tcell.StyleDefault.Bold(true))
	for i, line := range s.lines {
		s.drawLine(i+1, line, tcell.StyleDefault)
	}
	s.screen.Show()
}

func (s *ScreenSink) drawLine(y int, text string, style tcell.Style) {
	width, _ := s.screen.Size()
	x := 0
	for _, r := range text {
		if x >= width {
			return
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
