// Package logger provides structured logging built on zerolog.
//
// Console or JSON output is selected by configuration; loggers are
// cheap to derive with component tags or extra fields. The Nop logger
// discards everything and is the default for library code.
package logger
