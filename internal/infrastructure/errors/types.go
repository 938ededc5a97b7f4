package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrorCode classifies failures raised inside the shell
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNavigation
	ErrCodeResourceLoad
	ErrCodeModuleLoad
	ErrCodeExternalOpen
	ErrCodeNetwork
	ErrCodeTimeout
	ErrCodeCancelled
	ErrCodePlatform
	ErrCodeInvalidState
	ErrCodeValidation
	ErrCodeInternal
)

// String returns a string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeNavigation:
		return "NAVIGATION"
	case ErrCodeResourceLoad:
		return "RESOURCE_LOAD"
	case ErrCodeModuleLoad:
		return "MODULE_LOAD"
	case ErrCodeExternalOpen:
		return "EXTERNAL_OPEN"
	case ErrCodeNetwork:
		return "NETWORK"
	case ErrCodeTimeout:
		return "TIMEOUT"
	case ErrCodeCancelled:
		return "CANCELLED"
	case ErrCodePlatform:
		return "PLATFORM"
	case ErrCodeInvalidState:
		return "INVALID_STATE"
	case ErrCodeValidation:
		return "VALIDATION"
	case ErrCodeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// ShellError is a shell failure carrying its classification and context.
// Shell errors are reported, never fatal.
type ShellError struct {
	Op        string            // operation name
	Err       error             // underlying error
	Code      ErrorCode         // error classification
	Retryable bool              // whether the error is retryable
	Context   map[string]string // additional context information
	Timestamp time.Time         // when the error occurred
}

func (e *ShellError) Error() string {
	if e == nil {
		return "shell error"
	}

	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}

	if e.Code != ErrCodeUnknown {
		parts = append(parts, fmt.Sprintf("code=%s", e.Code.String()))
	}

	if e.Retryable {
		parts = append(parts, "retryable=true")
	}

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, e.Context[k]))
		}
	}

	contextStr := ""
	if len(parts) > 0 {
		contextStr = fmt.Sprintf(" [%s]", strings.Join(parts, " "))
	}

	if e.Err != nil {
		return e.Err.Error() + contextStr
	}
	return "shell error" + contextStr
}

func (e *ShellError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements error matching for errors.Is
func (e *ShellError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*ShellError); ok {
		return e.Code == t.Code
	}
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}
	return false
}

// IsRetryable returns whether the error is retryable
func (e *ShellError) IsRetryable() bool {
	if e == nil {
		return false
	}
	return e.Retryable
}

// GetCode returns the error code as a string (for logging interface compatibility)
func (e *ShellError) GetCode() string {
	if e == nil {
		return ErrCodeUnknown.String()
	}
	return e.Code.String()
}

// GetContext returns the error context (for logging interface compatibility)
func (e *ShellError) GetContext() map[string]string {
	if e == nil || e.Context == nil {
		return make(map[string]string)
	}
	return e.Context
}

// GetTimestamp returns the error timestamp (for logging interface compatibility)
func (e *ShellError) GetTimestamp() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.Timestamp
}

// WithContext adds context information to the error by mutating the receiver.
// Not safe once the error has been handed to another goroutine.
func (e *ShellError) WithContext(key, value string) *ShellError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// NewShellError creates a new shell error with the given parameters
func NewShellError(op string, err error, code ErrorCode) *ShellError {
	return &ShellError{
		Op:        op,
		Err:       err,
		Code:      code,
		Retryable: isRetryableError(code, err),
		Context:   make(map[string]string),
		Timestamp: time.Now(),
	}
}

// NewShellErrorWithContext creates a new shell error with additional context
func NewShellErrorWithContext(op string, err error, code ErrorCode, context map[string]string) *ShellError {
	shellErr := NewShellError(op, err, code)
	if context != nil {
		shellErr.Context = make(map[string]string, len(context))
		for k, v := range context {
			shellErr.Context[k] = v
		}
	}
	return shellErr
}

// isRetryableError determines if an error is retryable based on its code
func isRetryableError(code ErrorCode, err error) bool {
	switch code {
	case ErrCodeNetwork, ErrCodeTimeout:
		return true
	case ErrCodeNavigation, ErrCodeResourceLoad, ErrCodeModuleLoad, ErrCodeExternalOpen,
		ErrCodeCancelled, ErrCodePlatform, ErrCodeInvalidState, ErrCodeValidation, ErrCodeInternal:
		return false
	default:
		if err != nil {
			errStr := strings.ToLower(err.Error())
			return strings.Contains(errStr, "temporary") ||
				strings.Contains(errStr, "timeout") ||
				strings.Contains(errStr, "connection reset")
		}
		return false
	}
}

func hasCode(err error, code ErrorCode) bool {
	var shellErr *ShellError
	if errors.As(err, &shellErr) {
		return shellErr.Code == code
	}
	return false
}

// IsNavigation checks if the error is a navigation failure
func IsNavigation(err error) bool { return hasCode(err, ErrCodeNavigation) }

// IsResourceLoad checks if the error is a local resource load failure
func IsResourceLoad(err error) bool { return hasCode(err, ErrCodeResourceLoad) }

// IsModuleLoad checks if the error is a context-menu module load failure
func IsModuleLoad(err error) bool { return hasCode(err, ErrCodeModuleLoad) }

// IsExternalOpen checks if the error came from the external browser opener
func IsExternalOpen(err error) bool { return hasCode(err, ErrCodeExternalOpen) }

// IsNetwork checks if the error is a network error
func IsNetwork(err error) bool { return hasCode(err, ErrCodeNetwork) }

// IsTimeout checks if the error is a timeout error
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsCancelled checks if the error is a cancellation
func IsCancelled(err error) bool { return hasCode(err, ErrCodeCancelled) }

// IsPlatform checks if the error came from an OS-level call
func IsPlatform(err error) bool { return hasCode(err, ErrCodePlatform) }

// IsInvalidState checks if the error is a lifecycle state violation
func IsInvalidState(err error) bool { return hasCode(err, ErrCodeInvalidState) }

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsRetryable checks if the error is retryable
func IsRetryable(err error) bool {
	var shellErr *ShellError
	if errors.As(err, &shellErr) {
		return shellErr.Retryable
	}
	return false
}
