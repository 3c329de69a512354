// Package hardware decodes raw hardware keyboard signals into events.
//
// A Signal describes one key transition as the platform reports it: the
// abstract key, the unicode value packed with classification flags, the
// held modifiers and whether the platform considers the key printing.
// KeyboardDecoder turns each Signal into exactly one event.Event:
//
//   - Backspace (the delete key) always commits event.CodeDelete
//   - printing keys, Space and Enter carrying CombiningAccent become Dead
//   - Enter commits event.CodeEnter, or event.CodeShiftEnter with Shift
//   - other printing keys commit the code point in the low bits
//   - everything else is NotHandled
//
// Decoding is pure and safe for concurrent use. Dead-key composition is
// left to the consumer of the events.
//
// TcellTranslator adapts terminal key events from tcell into Signals.
package hardware
