package app

import (
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/sjson"

	"github.com/dshills/hwkeys/internal/input/event"
	"github.com/dshills/hwkeys/internal/input/hardware"
)

// Formatter renders one decoded signal as a single line without newline.
type Formatter func(sig hardware.Signal, ev event.Event) (string, error)

// NewFormatter returns the formatter for "text" or "json".
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatText renders "<signal> => <event>".
func FormatText(sig hardware.Signal, ev event.Event) (string, error) {
	return sig.String() + " => " + ev.String(), nil
}

// FormatJSON renders one JSON object per signal:
//
//	{"key":"Rune","unicode":97,"mods":"","printing":true,"kind":"committable","code_point":97,"text":"a"}
//
// Control sentinels add "control" with the sentinel name instead of
// "text"; dead keys carry "accent".
func FormatJSON(sig hardware.Signal, ev event.Event) (string, error) {
	type field struct {
		path  string
		value any
	}
	fields := []field{
		{"key", sig.Key.String()},
		{"unicode", sig.Unicode},
		{"mods", sig.Modifiers.String()},
		{"printing", sig.Printing},
		{"kind", ev.Kind.String()},
	}

	switch {
	case ev.IsControl():
		fields = append(fields, field{"code_point", ev.CodePoint}, field{"control", event.CodeName(ev.CodePoint)})
	case ev.IsCommittable():
		fields = append(fields, field{"code_point", ev.CodePoint})
		// Surrogates and out-of-range values have no UTF-8 text.
		if utf8.ValidRune(ev.CodePoint) {
			fields = append(fields, field{"text", string(ev.CodePoint)})
		}
	case ev.IsDead():
		fields = append(fields, field{"accent", ev.Accent})
	}

	json := "{}"
	for _, f := range fields {
		var err error
		if json, err = sjson.Set(json, f.path, f.value); err != nil {
			return "", NewOperationError("format", f.path, err)
		}
	}
	return json, nil
}
