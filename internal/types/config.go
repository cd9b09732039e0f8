package types

import (
	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/samber/lo"
)

// LogLevel is the logging verbosity of the application
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) Validate() error {
	allowed := []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
	if !lo.Contains(allowed, l) {
		return ierr.NewError("invalid log level").
			WithHintf("Log level must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// EventDestination selects the pubsub backend carrying domain events
type EventDestination string

const (
	EventDestinationMemory EventDestination = "memory"
	EventDestinationKafka  EventDestination = "kafka"
)

func (d EventDestination) Validate() error {
	allowed := []EventDestination{EventDestinationMemory, EventDestinationKafka}
	if !lo.Contains(allowed, d) {
		return ierr.NewError("invalid event destination").
			WithHintf("Event destination must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}
