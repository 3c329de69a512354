// Package key provides abstract key identifiers for hardware keyboard input.
//
// This package defines the fundamental types for naming physical keys
// independently of the characters they produce:
//
//   - Key: Identifies a keyboard key (special keys, modifier keys, function
//     keys, or character keys)
//   - Modifier: Represents held modifier keys (Shift, Ctrl, Alt, Meta)
//
// # Key Names
//
// Keys and modifiers can be looked up by name, case-insensitively:
//
//   - Keys: "Enter", "Space", "BS", "Del", "Shift", and "Rune" (or "Char")
//     for any character key
//   - Modifiers: "Shift", "Ctrl+Alt", "C-S"
//
// Character keys are represented by KeyRune. The character a key produces
// under the current modifiers is carried separately by the caller.
package key
