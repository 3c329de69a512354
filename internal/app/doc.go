// Package app runs decoding sessions: it reads raw key signals from a
// Source, decodes each one and writes the result to a Sink.
//
// Sources:
//
//   - ScriptSource reads one signal per line of text or JSON
//   - TerminalSource reads key events from a tcell screen
//
// Sinks render through a Formatter (text or JSON) either to an io.Writer
// or to a tcell screen.
package app
