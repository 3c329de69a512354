package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/dshills/hwkeys/internal/input/hardware"
	"github.com/dshills/hwkeys/internal/input/key"
)

// Source produces raw key signals. Next returns io.EOF when exhausted.
type Source interface {
	Next(ctx context.Context) (hardware.Signal, error)
}

// ScriptSource reads signals from text, one per line.
//
// Text lines are space-separated key=value pairs:
//
//	key=Enter mods=Shift
//	key=Rune unicode='A' mods=Shift printing=true
//	key=Rune dead=0x301 printing=true
//
// Lines starting with '{' are JSON objects with the same field names.
// Blank lines and lines starting with '#' are skipped.
//
// unicode and dead take an integer in any Go base or a quoted character.
// A quoted value longer than one character is read as a number only when
// it carries a 0x, 0o or 0b prefix, so "5" is the digit and "0x35" is 53.
// key=Space without unicode or dead reports ' '.
//
// The delete key is key=BS (Backspace). key=Delete, or del, is the forward
// delete key and decodes as not handled.
type ScriptSource struct {
	scanner *bufio.Scanner
	line    int
}

// NewScriptSource creates a source reading from r.
func NewScriptSource(r io.Reader) *ScriptSource {
	return &ScriptSource{scanner: bufio.NewScanner(r)}
}

// Next returns the next signal. Unparseable lines yield an error wrapping
// ErrMalformedSignal; reading may continue after one.
func (s *ScriptSource) Next(ctx context.Context) (hardware.Signal, error) {
	for {
		if err := ctx.Err(); err != nil {
			return hardware.Signal{}, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return hardware.Signal{}, NewOperationError("read", "script", err)
			}
			return hardware.Signal{}, io.EOF
		}
		s.line++

		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sig, err := ParseSignal(line)
		if err != nil {
			return hardware.Signal{}, NewOperationError("parse signal", fmt.Sprintf("line %d", s.line), err)
		}
		return sig, nil
	}
}

// ParseSignal parses one script line.
func ParseSignal(line string) (hardware.Signal, error) {
	fields := map[string]string{}

	if strings.HasPrefix(line, "{") {
		if !gjson.Valid(line) {
			return hardware.Signal{}, fmt.Errorf("%w: invalid JSON", ErrMalformedSignal)
		}
		gjson.Parse(line).ForEach(func(k, v gjson.Result) bool {
			if v.Type == gjson.String {
				// Keep quotes so 'x' and "x" both read as characters.
				fields[k.String()] = strconv.Quote(v.String())
			} else {
				fields[k.String()] = v.Raw
			}
			return true
		})
	} else {
		for _, part := range strings.Fields(line) {
			k, v, ok := strings.Cut(part, "=")
			if !ok {
				return hardware.Signal{}, fmt.Errorf("%w: expected key=value, got %q", ErrMalformedSignal, part)
			}
			fields[strings.ToLower(k)] = v
		}
	}

	var sig hardware.Signal
	hasCode := false
	for k, v := range fields {
		switch k {
		case "key":
			name := unquote(v)
			sig.Key = key.KeyFromName(name)
			if sig.Key == key.KeyNone && !strings.EqualFold(name, "none") {
				return hardware.Signal{}, fmt.Errorf("%w: unknown key %q", ErrMalformedSignal, name)
			}
		case "mods":
			sig.Modifiers = key.ParseModifiers(unquote(v))
		case "printing":
			b, err := strconv.ParseBool(unquote(v))
			if err != nil {
				return hardware.Signal{}, fmt.Errorf("%w: printing: %v", ErrMalformedSignal, err)
			}
			sig.Printing = b
		case "unicode", "dead":
			n, err := parseCodeValue(v)
			if err != nil {
				return hardware.Signal{}, fmt.Errorf("%w: %s: %v", ErrMalformedSignal, k, err)
			}
			if k == "dead" {
				n = hardware.DeadSignal(rune(n))
			}
			sig.Unicode |= n
			hasCode = true
		default:
			return hardware.Signal{}, fmt.Errorf("%w: unknown field %q", ErrMalformedSignal, k)
		}
	}
	if sig.Key == key.KeySpace && !hasCode {
		sig.Unicode = ' '
	}
	return sig, nil
}

// parseCodeValue accepts integers in any Go base, or a quoted character.
// Quoted numbers need a base prefix.
func parseCodeValue(v string) (uint32, error) {
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') {
		s, err := strconv.Unquote(v)
		if err != nil && v[0] == '\'' {
			s, err = strconv.Unquote(`"` + v[1:len(v)-1] + `"`)
		}
		if err != nil {
			return 0, err
		}
		if utf8.RuneCountInString(s) != 1 {
			if !hasBasePrefix(s) {
				return 0, fmt.Errorf("want one character, got %q", s)
			}
			n, perr := strconv.ParseUint(s, 0, 32)
			if perr != nil {
				return 0, perr
			}
			return uint32(n), nil
		}
		r, _ := utf8.DecodeRuneInString(s)
		return uint32(r), nil
	}
	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func hasBasePrefix(s string) bool {
	if len(s) < 3 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func unquote(v string) string {
	if s, err := strconv.Unquote(v); err == nil {
		return s
	}
	return v
}
