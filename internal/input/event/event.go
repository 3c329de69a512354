// Package event defines the decoded input events handed to the text-entry
// pipeline.
//
// An Event is one of three kinds:
//
//   - Committable: a code point ready to be committed, or one of the
//     control sentinels (CodeDelete, CodeEnter, CodeShiftEnter)
//   - Dead: a dead-key press carrying the pending accent
//   - NotHandled: the key is outside the decoder's interpretation
//
// Committable and Dead events may reference a successor through Next,
// forming a chain the caller can emit in order.
package event

import "fmt"

// Kind identifies which shape an Event has.
type Kind uint8

const (
	// KindNotHandled marks a key another layer must deal with.
	KindNotHandled Kind = iota

	// KindCommittable marks a code point or control sentinel.
	KindCommittable

	// KindDead marks a dead key awaiting composition.
	KindDead
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotHandled:
		return "not-handled"
	case KindCommittable:
		return "committable"
	case KindDead:
		return "dead"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Control sentinels. All are negative so they never collide with a
// Unicode scalar value.
const (
	// CodeDelete deletes the character before the cursor.
	CodeDelete rune = -5

	// CodeEnter triggers the editor action, or inserts a line break when
	// there is none.
	CodeEnter rune = -10

	// CodeShiftEnter is Enter with Shift held.
	CodeShiftEnter rune = -11
)

// IsSentinel reports whether cp is a control sentinel rather than a
// character.
func IsSentinel(cp rune) bool {
	return cp < 0
}

// Event is a single decoded key event.
type Event struct {
	// Kind selects which of the fields below are meaningful.
	Kind Kind

	// CodePoint is set for Committable events.
	CodePoint rune

	// Accent is set for Dead events.
	Accent rune

	// Next is an optional successor. Nil ends the chain.
	Next *Event
}

// NewCommittable creates a committable event for a code point or sentinel.
func NewCommittable(cp rune, next *Event) Event {
	return Event{Kind: KindCommittable, CodePoint: cp, Next: next}
}

// NewDead creates a dead-key event for the given accent.
func NewDead(accent rune, next *Event) Event {
	return Event{Kind: KindDead, Accent: accent, Next: next}
}

// NotHandled creates an event for a key the decoder does not interpret.
func NotHandled() Event {
	return Event{Kind: KindNotHandled}
}

// IsCommittable returns true for Committable events.
func (e Event) IsCommittable() bool {
	return e.Kind == KindCommittable
}

// IsDead returns true for Dead events.
func (e Event) IsDead() bool {
	return e.Kind == KindDead
}

// IsHandled returns false only for NotHandled events.
func (e Event) IsHandled() bool {
	return e.Kind != KindNotHandled
}

// IsControl returns true if this is a committable control sentinel.
func (e Event) IsControl() bool {
	return e.IsCommittable() && IsSentinel(e.CodePoint)
}

// Chain returns this event followed by every successor reachable
// through Next.
func (e Event) Chain() []Event {
	chain := []Event{e}
	for n := e.Next; n != nil; n = n.Next {
		chain = append(chain, *n)
	}
	return chain
}

// Equal returns true if both events, and their successor chains, match.
func (e Event) Equal(other Event) bool {
	if e.Kind != other.Kind || e.CodePoint != other.CodePoint || e.Accent != other.Accent {
		return false
	}
	switch {
	case e.Next == nil && other.Next == nil:
		return true
	case e.Next == nil || other.Next == nil:
		return false
	default:
		return e.Next.Equal(*other.Next)
	}
}

// String returns a compact representation.
// Examples: "commit('a')", "commit(<Enter>)", "dead(U+0301)", "not-handled".
func (e Event) String() string {
	var s string
	switch e.Kind {
	case KindCommittable:
		s = "commit(" + CodeName(e.CodePoint) + ")"
	case KindDead:
		s = fmt.Sprintf("dead(U+%04X)", e.Accent)
	default:
		s = e.Kind.String()
	}
	if e.Next != nil {
		s += " -> " + e.Next.String()
	}
	return s
}

// CodeName returns the display name of a committed code point.
func CodeName(cp rune) string {
	switch cp {
	case CodeDelete:
		return "<Delete>"
	case CodeEnter:
		return "<Enter>"
	case CodeShiftEnter:
		return "<S-Enter>"
	}
	if IsSentinel(cp) {
		return fmt.Sprintf("<%d>", cp)
	}
	return fmt.Sprintf("%q", cp)
}
