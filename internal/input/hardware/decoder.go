package hardware

import (
	"github.com/dshills/hwkeys/internal/input/event"
	"github.com/dshills/hwkeys/internal/input/key"
)

// DeleteKey is the key that deletes the character before the cursor.
const DeleteKey = key.KeyBackspace

// Decoder turns hardware key signals into events.
type Decoder interface {
	Decode(sig Signal) event.Event
}

// Classifier answers platform questions about a signal.
type Classifier interface {
	// IsPrinting reports whether the key normally produces a visible
	// character.
	IsPrinting(sig Signal) bool
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(sig Signal) bool

// IsPrinting calls f.
func (f ClassifierFunc) IsPrinting(sig Signal) bool {
	return f(sig)
}

// SignalClassifier trusts the Printing flag reported with the signal.
var SignalClassifier Classifier = ClassifierFunc(func(sig Signal) bool {
	return sig.Printing
})

// KeyboardDecoder decodes signals from a qwerty-style hardware keyboard.
// It does not handle 10-key pads.
type KeyboardDecoder struct {
	deviceID   int
	classifier Classifier
}

// Option configures a KeyboardDecoder.
type Option func(*KeyboardDecoder)

// WithClassifier sets the printing-class predicate.
func WithClassifier(c Classifier) Option {
	return func(d *KeyboardDecoder) {
		if c != nil {
			d.classifier = c
		}
	}
}

// NewKeyboardDecoder creates a decoder for the given input device.
func NewKeyboardDecoder(deviceID int, opts ...Option) *KeyboardDecoder {
	d := &KeyboardDecoder{
		deviceID:   deviceID,
		classifier: SignalClassifier,
	}
	for _, opt := range opts {
		opt(d)
	}
	// TODO: resolve the keyboard layout for deviceID once layouts are per device.
	return d
}

// DeviceID returns the input device this decoder was created for.
func (d *KeyboardDecoder) DeviceID() int {
	return d.deviceID
}

// Decode converts one signal into exactly one event.
func (d *KeyboardDecoder) Decode(sig Signal) event.Event {
	if sig.Key == DeleteKey {
		return event.NewCommittable(event.CodeDelete, nil)
	}

	if d.classifier.IsPrinting(sig) || sig.Key == key.KeySpace || sig.Key == key.KeyEnter {
		// Checked before Enter: an Enter key carrying the flag is a dead key.
		if sig.IsDeadKey() {
			return event.NewDead(sig.Accent(), nil)
		}
		if sig.Key == key.KeyEnter {
			// Never the raw carriage return; the consumer picks action or newline.
			if sig.Modifiers.HasShift() {
				return event.NewCommittable(event.CodeShiftEnter, nil)
			}
			return event.NewCommittable(event.CodeEnter, nil)
		}
		return event.NewCommittable(sig.CodePoint(), nil)
	}

	return event.NotHandled()
}

var _ Decoder = (*KeyboardDecoder)(nil)
