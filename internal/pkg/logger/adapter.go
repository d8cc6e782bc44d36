package logger

import "token_dashboard/internal/app/port"

// slogAdapter implements the port.Logger interface on top of the package's
// global functions, so services that expect a port.Logger can be handed a
// concrete implementation.
type slogAdapter struct{}

// NewSlogAdapter creates a new slogAdapter instance.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// Info logs an informational message.
func (a *slogAdapter) Info(msg string, args ...any) {
	Info(msg, args...)
}

// Debug logs a debug message.
func (a *slogAdapter) Debug(msg string, args ...any) {
	Debug(msg, args...)
}

// Warn logs a warning message.
func (a *slogAdapter) Warn(msg string, args ...any) {
	Warn(msg, args...)
}

// Error logs an error message.
func (a *slogAdapter) Error(msg string, args ...any) {
	Error(msg, args...)
}
