// Package logging assembles structured slog loggers used across paperdesk.
//
// It owns the console and JSON handlers, level parsing, and output fan-out to
// the optional log file. The console handler colours level labels only when
// writing to a terminal. A no-op logger is provided for tests and for wiring
// code that runs before configuration is available.
package logging
