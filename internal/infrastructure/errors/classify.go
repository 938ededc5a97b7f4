package errors

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
)

// ClassifyError maps a raw error onto a shell error code
func ClassifyError(err error) ErrorCode {
	if err == nil {
		return ErrCodeUnknown
	}

	var shellErr *ShellError
	if errors.As(err, &shellErr) {
		return shellErr.Code
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	case errors.Is(err, context.Canceled):
		return ErrCodeCancelled
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrCodeTimeout
		}
		return ErrCodeNetwork
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrCodeNetwork
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout"):
		return ErrCodeTimeout
	case strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no such host"),
		strings.Contains(errStr, "network unreachable"):
		return ErrCodeNetwork
	case strings.Contains(errStr, "invalid url"),
		strings.Contains(errStr, "unsupported protocol scheme"):
		return ErrCodeValidation
	default:
		return ErrCodeUnknown
	}
}

// Wrap classifies err and wraps it as a shell error for op
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewShellError(op, err, ClassifyError(err))
}

// WrapWithContext classifies err and wraps it as a shell error for op with context
func WrapWithContext(op string, err error, contextMap map[string]string) error {
	if err == nil {
		return nil
	}
	return NewShellErrorWithContext(op, err, ClassifyError(err), contextMap)
}

// HandleNavigationError creates a standardized navigation failure
func HandleNavigationError(op string, target string, err error) error {
	if err == nil {
		err = errors.New("navigation failed")
	}
	return NewShellErrorWithContext(op, err, ErrCodeNavigation, map[string]string{
		"url": target,
	})
}

// HandleExternalOpenError creates a standardized external opener failure
func HandleExternalOpenError(op string, target string, err error) error {
	if err == nil {
		err = errors.New("external open failed")
	}
	return NewShellErrorWithContext(op, err, ErrCodeExternalOpen, map[string]string{
		"url": target,
	})
}

// HandleModuleLoadError creates a standardized module load failure
func HandleModuleLoadError(op string, module string, err error) error {
	if err == nil {
		err = errors.New("module load failed")
	}
	return NewShellErrorWithContext(op, err, ErrCodeModuleLoad, map[string]string{
		"module": module,
	})
}

// HandleInvalidState creates a standardized lifecycle state violation
func HandleInvalidState(op string, state string, details string) error {
	return NewShellErrorWithContext(op, errors.New("invalid lifecycle state"), ErrCodeInvalidState, map[string]string{
		"state":   state,
		"details": details,
	})
}

// HandleValidationError creates a standardized validation error
func HandleValidationError(op string, field string, value string, reason string) error {
	return NewShellErrorWithContext(op, errors.New("validation failed"), ErrCodeValidation, map[string]string{
		"field":  field,
		"value":  value,
		"reason": reason,
	})
}
