// Package alsutil holds logging and error-wrapping conventions shared across
// the codec, its adapters, and its CLI/server entry points.
package alsutil

import (
	"fmt"
	"log/slog"
	"runtime"
)

// AlsError adds structured context and a stack trace to a wrapped error.
// It is used at the boundary (CLI, HTTP server, input adapters) to attach
// operator-facing context; the core packages return the typed sentinel
// errors in errkinds.go directly so callers can errors.As them precisely.
type AlsError struct {
	OriginalErr error
	Message     string
	Stack       string
	Attrs       []slog.Attr
}

func (e *AlsError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

func (e *AlsError) Unwrap() error {
	return e.OriginalErr
}

const maxStackLength = 8192

// NewError creates an AlsError without an underlying cause.
func NewError(message string, attrs ...slog.Attr) *AlsError {
	return newAlsError(nil, message, attrs...)
}

// WrapError creates an AlsError wrapping an existing error.
func WrapError(err error, message string, attrs ...slog.Attr) *AlsError {
	return newAlsError(err, message, attrs...)
}

func newAlsError(originalErr error, message string, attrs ...slog.Attr) *AlsError {
	buf := make([]byte, maxStackLength)
	n := runtime.Stack(buf, false)
	stack := string(buf[:n])

	if ae, ok := originalErr.(*AlsError); ok {
		combinedAttrs := append(append([]slog.Attr{}, ae.Attrs...), attrs...)
		newMessage := message
		if ae.Message != "" {
			newMessage = fmt.Sprintf("%s: %s", message, ae.Message)
		}
		return &AlsError{
			OriginalErr: ae.OriginalErr,
			Message:     newMessage,
			Stack:       ae.Stack,
			Attrs:       combinedAttrs,
		}
	}

	return &AlsError{
		OriginalErr: originalErr,
		Message:     message,
		Stack:       stack,
		Attrs:       attrs,
	}
}

// LogError logs an AlsError with its structured context and stack trace.
// Non-AlsError values are logged as a plain error message.
func LogError(logger *slog.Logger, err error) {
	if err == nil {
		return
	}

	var ae *AlsError
	if asAe, ok := err.(*AlsError); ok {
		ae = asAe
	} else if asWrapper, ok := err.(interface{ Unwrap() error }); ok {
		if unwrapAe, okUnwrap := asWrapper.Unwrap().(*AlsError); okUnwrap {
			ae = unwrapAe
		}
	}

	if ae != nil {
		logAttrs := []any{slog.String("error_message", ae.Message)}
		if ae.OriginalErr != nil {
			logAttrs = append(logAttrs, slog.String("original_error", ae.OriginalErr.Error()))
		}
		logAttrs = append(logAttrs, slog.String("stack_trace", ae.Stack))
		for _, attr := range ae.Attrs {
			logAttrs = append(logAttrs, attr)
		}
		logger.Error("An error occurred", logAttrs...)
		return
	}
	logger.Error("An error occurred", slog.String("error", err.Error()))
}
