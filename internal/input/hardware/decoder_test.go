package hardware

import (
	"sync"
	"testing"

	"github.com/dshills/hwkeys/internal/input/event"
	"github.com/dshills/hwkeys/internal/input/key"
)

const (
	acute     = 0x0301
	diaeresis = 0x0308
)

func TestKeyboardDecoderDecode(t *testing.T) {
	tests := []struct {
		name string
		sig  Signal
		want event.Event
	}{
		{
			name: "delete",
			sig:  Signal{Key: DeleteKey},
			want: event.NewCommittable(event.CodeDelete, nil),
		},
		{
			name: "delete ignores unicode and modifiers",
			sig:  Signal{Key: DeleteKey, Unicode: DeadSignal(acute) | 'x', Modifiers: key.ModShift, Printing: true},
			want: event.NewCommittable(event.CodeDelete, nil),
		},
		{
			name: "enter",
			sig:  Signal{Key: key.KeyEnter, Unicode: '\r'},
			want: event.NewCommittable(event.CodeEnter, nil),
		},
		{
			name: "shift enter",
			sig:  Signal{Key: key.KeyEnter, Unicode: '\r', Modifiers: key.ModShift},
			want: event.NewCommittable(event.CodeShiftEnter, nil),
		},
		{
			name: "ctrl enter is plain enter",
			sig:  Signal{Key: key.KeyEnter, Unicode: '\r', Modifiers: key.ModCtrl},
			want: event.NewCommittable(event.CodeEnter, nil),
		},
		{
			name: "enter with accent flag is dead",
			sig:  Signal{Key: key.KeyEnter, Unicode: DeadSignal(acute), Modifiers: key.ModShift},
			want: event.NewDead(acute, nil),
		},
		{
			name: "space",
			sig:  Signal{Key: key.KeySpace, Unicode: ' '},
			want: event.NewCommittable(' ', nil),
		},
		{
			name: "space with accent flag is dead",
			sig:  Signal{Key: key.KeySpace, Unicode: DeadSignal(diaeresis)},
			want: event.NewDead(diaeresis, nil),
		},
		{
			name: "letter",
			sig:  Signal{Key: key.KeyRune, Unicode: 'a', Printing: true},
			want: event.NewCommittable('a', nil),
		},
		{
			name: "shifted letter",
			sig:  Signal{Key: key.KeyRune, Unicode: 'A', Modifiers: key.ModShift, Printing: true},
			want: event.NewCommittable('A', nil),
		},
		{
			name: "symbol beyond BMP",
			sig:  Signal{Key: key.KeyRune, Unicode: 0x1F600, Printing: true},
			want: event.NewCommittable(0x1F600, nil),
		},
		{
			name: "high flag bits masked off code point",
			sig:  Signal{Key: key.KeyRune, Unicode: 0x40000000 | 'q', Printing: true},
			want: event.NewCommittable('q', nil),
		},
		{
			name: "dead key",
			sig:  Signal{Key: key.KeyRune, Unicode: DeadSignal(acute), Printing: true},
			want: event.NewDead(acute, nil),
		},
		{
			name: "dead key accent passed through uninterpreted",
			sig:  Signal{Key: key.KeyRune, Unicode: CombiningAccent | 0x7FFFFFFF, Printing: true},
			want: event.NewDead(0x7FFFFFFF, nil),
		},
		{
			name: "bare shift",
			sig:  Signal{Key: key.KeyShift, Modifiers: key.ModShift},
			want: event.NotHandled(),
		},
		{
			name: "function key",
			sig:  Signal{Key: key.KeyF5},
			want: event.NotHandled(),
		},
		{
			name: "forward delete is not the delete key",
			sig:  Signal{Key: key.KeyDelete, Unicode: 0x7F},
			want: event.NotHandled(),
		},
		{
			name: "non printing with accent flag",
			sig:  Signal{Key: key.KeyTab, Unicode: DeadSignal(acute)},
			want: event.NotHandled(),
		},
	}

	dec := NewKeyboardDecoder(7)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dec.Decode(tt.sig)
			if !got.Equal(tt.want) {
				t.Errorf("Decode(%v) = %v, want %v", tt.sig, got, tt.want)
			}
			if got.Next != nil {
				t.Errorf("Decode(%v) populated Next", tt.sig)
			}
		})
	}
}

func TestKeyboardDecoderClassifier(t *testing.T) {
	// A platform that considers every rune key printing, whatever the
	// signal claims.
	runes := ClassifierFunc(func(sig Signal) bool { return sig.Key == key.KeyRune })
	dec := NewKeyboardDecoder(0, WithClassifier(runes))

	got := dec.Decode(Signal{Key: key.KeyRune, Unicode: 'z'})
	if !got.Equal(event.NewCommittable('z', nil)) {
		t.Errorf("Decode() = %v, want commit('z')", got)
	}

	got = dec.Decode(Signal{Key: key.KeyTab, Unicode: '\t', Printing: true})
	if got.IsHandled() {
		t.Errorf("Decode() = %v, want not-handled", got)
	}
}

func TestKeyboardDecoderNilClassifier(t *testing.T) {
	dec := NewKeyboardDecoder(0, WithClassifier(nil))
	got := dec.Decode(Signal{Key: key.KeyRune, Unicode: 'k', Printing: true})
	if !got.Equal(event.NewCommittable('k', nil)) {
		t.Errorf("Decode() = %v, want commit('k')", got)
	}
}

func TestKeyboardDecoderPure(t *testing.T) {
	dec := NewKeyboardDecoder(42)
	sig := Signal{Key: key.KeyRune, Unicode: 'x', Printing: true}

	first := dec.Decode(sig)
	dec.Decode(Signal{Key: key.KeyRune, Unicode: DeadSignal(acute), Printing: true})
	second := dec.Decode(sig)

	if !first.Equal(second) {
		t.Errorf("Decode not idempotent: %v != %v", first, second)
	}
	if dec.DeviceID() != 42 {
		t.Errorf("DeviceID() = %d, want 42", dec.DeviceID())
	}
}

func TestKeyboardDecoderConcurrent(t *testing.T) {
	dec := NewKeyboardDecoder(1)
	var wg sync.WaitGroup
	errs := make(chan string, 100)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(r rune) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got := dec.Decode(Signal{Key: key.KeyRune, Unicode: uint32(r), Printing: true})
				if got.CodePoint != r {
					errs <- got.String()
					return
				}
			}
		}('a' + rune(i))
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Errorf("unexpected event %s", e)
	}
}

func TestSignalAccessors(t *testing.T) {
	sig := Signal{Unicode: DeadSignal(acute)}
	if !sig.IsDeadKey() {
		t.Error("IsDeadKey() = false")
	}
	if sig.Accent() != acute {
		t.Errorf("Accent() = %#x, want %#x", sig.Accent(), acute)
	}

	sig = Signal{Unicode: 0x7FE00000 | 'b'}
	if sig.IsDeadKey() {
		t.Error("IsDeadKey() = true")
	}
	if sig.CodePoint() != 'b' {
		t.Errorf("CodePoint() = %q, want 'b'", sig.CodePoint())
	}
}

func TestSignalString(t *testing.T) {
	sig := Signal{Key: key.KeyEnter, Unicode: '\r', Modifiers: key.ModShift}
	want := "Enter unicode=0xd mods=Shift printing=false"
	if got := sig.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	sig = Signal{Key: key.KeyRune, Unicode: 'a', Printing: true}
	want = "Rune unicode=0x61 mods=- printing=true"
	if got := sig.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
