package hardware

import (
	"fmt"

	"github.com/dshills/hwkeys/internal/input/key"
)

// Flags packed into Signal.Unicode above the code point.
const (
	// CombiningAccent marks the key as a dead key.
	CombiningAccent uint32 = 0x80000000

	// CombiningAccentMask extracts the accent from a dead-key value.
	CombiningAccentMask uint32 = 0x7FFFFFFF

	// CodePointMask extracts the code point the key produces.
	CodePointMask uint32 = 0x001FFFFF
)

// Signal is a raw key transition reported by the platform.
type Signal struct {
	// Key identifies the physical key.
	Key key.Key

	// Unicode is the produced code point in the low 21 bits, with
	// classification flags in the high bits.
	Unicode uint32

	// Modifiers contains the held modifier keys.
	Modifiers key.Modifier

	// Printing is set when the platform classifies the key as one that
	// normally produces a visible character.
	Printing bool
}

// CodePoint returns the code point packed in the low bits.
func (s Signal) CodePoint() rune {
	return rune(s.Unicode & CodePointMask)
}

// IsDeadKey returns true if the combining accent flag is set.
func (s Signal) IsDeadKey() bool {
	return s.Unicode&CombiningAccent != 0
}

// Accent returns the accent identifier of a dead key.
func (s Signal) Accent() rune {
	return rune(s.Unicode & CombiningAccentMask)
}

// DeadSignal packs an accent into a dead-key unicode value.
func DeadSignal(accent rune) uint32 {
	return CombiningAccent | uint32(accent)&CombiningAccentMask
}

// String returns a description for logs.
func (s Signal) String() string {
	mods := s.Modifiers.String()
	if mods == "" {
		mods = "-"
	}
	return fmt.Sprintf("%s unicode=%#x mods=%s printing=%t", s.Key, s.Unicode, mods, s.Printing)
}
