// Package logging provides implementations of the mkdb.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: prefixed lines on stderr or any io.Writer
//   - NullLogger: discards all messages
//
// Log output is diagnostic only. Messages addressed to the user are shown
// through an mkdb.Notifier.
package logging
