// Package logx wraps zerolog behind a small, stable logging API.
//
// The Service owns the configured sinks (console and/or JSON file) and can
// swap them at runtime via Apply without invalidating loggers already handed
// out. Logger values are cheap to copy; With() derives a logger with fixed
// fields attached.
package logx
