package hardware

import (
	"sync/atomic"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hwkeys/internal/input/key"
)

// DeadKeyTable maps a rune the terminal reports to the combining accent
// it stands for. Terminals compose dead keys themselves, so a layout that
// should expose them lists the spacing accents here.
type DeadKeyTable map[rune]rune

// Clone returns a copy of the table.
func (t DeadKeyTable) Clone() DeadKeyTable {
	c := make(DeadKeyTable, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// TcellTranslator converts tcell key events into Signals.
// The dead-key table can be replaced while translation is in progress.
type TcellTranslator struct {
	deadKeys atomic.Pointer[DeadKeyTable]
}

// NewTcellTranslator creates a translator with the given dead-key table.
func NewTcellTranslator(deadKeys DeadKeyTable) *TcellTranslator {
	t := &TcellTranslator{}
	t.SetDeadKeys(deadKeys)
	return t
}

// SetDeadKeys replaces the dead-key table.
func (t *TcellTranslator) SetDeadKeys(deadKeys DeadKeyTable) {
	c := deadKeys.Clone()
	t.deadKeys.Store(&c)
}

// DeadKeys returns a copy of the current dead-key table.
func (t *TcellTranslator) DeadKeys() DeadKeyTable {
	return (*t.deadKeys.Load()).Clone()
}

// Translate converts a tcell key event into a Signal.
// tcell never reports Shift on rune keys; the shifted character already
// carries it. Shift is still reported for Enter and other special keys.
func (t *TcellTranslator) Translate(ev *tcell.EventKey) Signal {
	sig := Signal{Modifiers: convertMod(ev.Modifiers())}

	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if accent, ok := (*t.deadKeys.Load())[r]; ok {
			sig.Key = key.KeyRune
			sig.Unicode = DeadSignal(accent)
			sig.Printing = true
			return sig
		}
		sig.Key = key.KeyRune
		if r == ' ' {
			sig.Key = key.KeySpace
		}
		sig.Unicode = uint32(r) & CodePointMask
		// Space separators are not printing; Space is matched by key instead.
		sig.Printing = r != ' ' && unicode.IsPrint(r)
	case tcell.KeyEnter:
		sig.Key = key.KeyEnter
		sig.Unicode = '\r'
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		sig.Key = key.KeyBackspace
		sig.Unicode = '\b'
	case tcell.KeyTab:
		sig.Key = key.KeyTab
		sig.Unicode = '\t'
	default:
		sig.Key = convertKey(ev.Key())
	}
	return sig
}

// convertKey converts non-character tcell keys to our Key type.
func convertKey(k tcell.Key) key.Key {
	switch k {
	case tcell.KeyEscape:
		return key.KeyEscape
	case tcell.KeyDelete:
		return key.KeyDelete
	case tcell.KeyInsert:
		return key.KeyInsert
	case tcell.KeyHome:
		return key.KeyHome
	case tcell.KeyEnd:
		return key.KeyEnd
	case tcell.KeyPgUp:
		return key.KeyPageUp
	case tcell.KeyPgDn:
		return key.KeyPageDown
	case tcell.KeyUp:
		return key.KeyUp
	case tcell.KeyDown:
		return key.KeyDown
	case tcell.KeyLeft:
		return key.KeyLeft
	case tcell.KeyRight:
		return key.KeyRight
	case tcell.KeyPause:
		return key.KeyPause
	case tcell.KeyPrint:
		return key.KeyPrintScreen
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.KeyF1 + key.Key(k-tcell.KeyF1)
	}
	return key.KeyNone
}

// convertMod converts tcell modifiers to our Modifier type.
func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}
