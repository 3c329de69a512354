package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/hwkeys/internal/input/event"
	"github.com/dshills/hwkeys/internal/input/hardware"
)

type recordingSink struct {
	events []event.Event
	err    error
}

func (s *recordingSink) Write(_ hardware.Signal, ev event.Event) error {
	s.events = append(s.events, ev)
	return s.err
}

type failingSource struct{ err error }

func (s failingSource) Next(context.Context) (hardware.Signal, error) {
	return hardware.Signal{}, s.err
}

const sessionScript = `key=Rune unicode='a' printing=true
key=Rune dead=0x301 printing=true
key=Rune unicode='e' printing=true
key=Enter mods=Shift
key=Enter
key=BS
key=Space unicode=32
key=Space
key=Delete
key=Shift mods=Shift
key=Bogus
`

func TestSession_Run(t *testing.T) {
	sink := &recordingSink{}
	session := NewSession(hardware.NewKeyboardDecoder(1), NewScriptSource(strings.NewReader(sessionScript)), sink, nil)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run error = %v", err)
	}

	want := []event.Event{
		event.NewCommittable('a', nil),
		event.NewDead(0x0301, nil),
		event.NewCommittable('e', nil),
		event.NewCommittable(event.CodeShiftEnter, nil),
		event.NewCommittable(event.CodeEnter, nil),
		event.NewCommittable(event.CodeDelete, nil),
		event.NewCommittable(' ', nil),
		event.NewCommittable(' ', nil),
		event.NotHandled(),
		event.NotHandled(),
	}
	if len(sink.events) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(sink.events), len(want), sink.events)
	}
	for i := range want {
		if !sink.events[i].Equal(want[i]) {
			t.Errorf("event %d = %v, want %v", i, sink.events[i], want[i])
		}
	}

	snap := session.Metrics().Snapshot()
	if snap.Committed != 4 || snap.Control != 3 || snap.Dead != 1 || snap.NotHandled != 2 || snap.Malformed != 1 {
		t.Errorf("metrics = %+v", snap)
	}
	if snap.Total() != 10 {
		t.Errorf("Total() = %d, want 10", snap.Total())
	}
}

func TestSession_JSONOutput(t *testing.T) {
	var out, logs bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &logs})
	sink := NewWriterSink(&out, FormatJSON)
	session := NewSession(hardware.NewKeyboardDecoder(0), NewScriptSource(strings.NewReader("key=Enter\nkey=F1\n")), sink, logger)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), out.String())
	}
	if got := gjson.Get(lines[0], "control").String(); got != "<Enter>" {
		t.Errorf("control = %q", got)
	}
	if got := gjson.Get(lines[1], "kind").String(); got != "not-handled" {
		t.Errorf("kind = %q", got)
	}

	if !strings.Contains(logs.String(), "session="+session.ID()) {
		t.Errorf("logs should carry the session id: %s", logs.String())
	}
	if !strings.Contains(logs.String(), "session finished: 2 events") {
		t.Errorf("missing summary in logs: %s", logs.String())
	}
	if !strings.Contains(logs.String(), "avg decode") || !strings.Contains(logs.String(), "uptime") {
		t.Errorf("summary should report decode time and uptime: %s", logs.String())
	}
	if !strings.Contains(logs.String(), "component=session") {
		t.Errorf("session logs should carry the component: %s", logs.String())
	}
}

func TestSession_StopsOnQuitAndCancel(t *testing.T) {
	for _, err := range []error{ErrQuit, context.Canceled} {
		session := NewSession(hardware.NewKeyboardDecoder(0), failingSource{err: err}, &recordingSink{}, nil)
		if got := session.Run(context.Background()); got != nil {
			t.Errorf("Run with %v = %v, want nil", err, got)
		}
	}
}

func TestSession_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	session := NewSession(hardware.NewKeyboardDecoder(0), failingSource{err: boom}, &recordingSink{}, nil)
	if err := session.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("source error = %v, want boom", err)
	}

	sink := &recordingSink{err: boom}
	session = NewSession(hardware.NewKeyboardDecoder(0), NewScriptSource(strings.NewReader("key=Enter\nkey=Enter\n")), sink, nil)
	if err := session.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("sink error = %v, want boom", err)
	}
	if len(sink.events) != 1 {
		t.Errorf("session kept writing after sink error: %d events", len(sink.events))
	}
}

func TestSession_UniqueIDs(t *testing.T) {
	a := NewSession(hardware.NewKeyboardDecoder(0), failingSource{}, &recordingSink{}, nil)
	b := NewSession(hardware.NewKeyboardDecoder(0), failingSource{}, &recordingSink{}, nil)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("session ids %q and %q should be distinct and non-empty", a.ID(), b.ID())
	}
}
