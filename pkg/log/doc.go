// Package log is the structured logging abstraction used by switchyard
// components.
//
// The action log and router accept any [Logger]; a zerolog-backed adapter and
// a no-op logger are provided:
//
//	logger := log.NewZerolog(zerolog.New(os.Stderr))
//	history, _ := actionlog.New(8, actionlog.WithLogger(logger))
//
// Components default to [NoopLogger] when no logger is supplied.
package log
