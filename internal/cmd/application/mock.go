package application

import (
	"time"

	"github.com/rs/zerolog"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    ConductorFunc: func() (application.Conductor, error) {
//	        return fakeConductor, nil
//	    },
//	}
//	cmd := run.NewCommand(mock)
type Mock struct {
	ConductorFunc    func() (Conductor, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	RunTimeoutFunc   func() time.Duration
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Conductor returns a conductor using the mock function or nil.
func (m *Mock) Conductor() (Conductor, error) {
	if m.ConductorFunc != nil {
		return m.ConductorFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// RunTimeout returns the run timeout using the mock function or zero.
func (m *Mock) RunTimeout() time.Duration {
	if m.RunTimeoutFunc != nil {
		return m.RunTimeoutFunc()
	}
	return 0
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
