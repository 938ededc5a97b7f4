package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tiktok-desktop/internal/testutils"
)

func fastConfig() *RetryConfig {
	config := DefaultRetryConfig()
	config.InitialDelay = time.Millisecond
	config.Jitter = false
	return config
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxAttempts != 3 {
		t.Errorf("Expected MaxAttempts to be 3, got %d", config.MaxAttempts)
	}
	if config.InitialDelay != 250*time.Millisecond {
		t.Errorf("Expected InitialDelay to be 250ms, got %v", config.InitialDelay)
	}
	if config.MaxDelay != 4*time.Second {
		t.Errorf("Expected MaxDelay to be 4s, got %v", config.MaxDelay)
	}
	if len(config.RetryableErrors) != 2 {
		t.Errorf("Expected 2 retryable error codes, got %d", len(config.RetryableErrors))
	}
}

func TestWithRetry_Success(t *testing.T) {
	callCount := 0
	err := WithRetry(context.Background(), DefaultRetryConfig(), func(context.Context) error {
		callCount++
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected operation to be called once, got %d", callCount)
	}
}

func TestWithRetry_SuccessAfterRetries(t *testing.T) {
	callCount := 0
	err := WithRetry(context.Background(), fastConfig(), func(context.Context) error {
		callCount++
		if callCount < 3 {
			return NewShellError("probe", errors.New("dial tcp: i/o timeout"), ErrCodeNetwork)
		}
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("Expected operation to be called 3 times, got %d", callCount)
	}
}

func TestWithRetry_NonRetryableError(t *testing.T) {
	callCount := 0
	err := WithRetry(context.Background(), fastConfig(), func(context.Context) error {
		callCount++
		return NewShellError("probe", errors.New("bad url"), ErrCodeValidation)
	})

	if !IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected operation to be called once, got %d", callCount)
	}
}

func TestWithRetry_PlainErrorNotRetried(t *testing.T) {
	callCount := 0
	err := WithRetry(context.Background(), fastConfig(), func(context.Context) error {
		callCount++
		return errors.New("plain")
	})

	if err == nil || callCount != 1 {
		t.Errorf("Expected single failed attempt, got err=%v calls=%d", err, callCount)
	}
}

func TestWithRetry_MaxAttemptsExceeded(t *testing.T) {
	callCount := 0
	err := WithRetryContext(context.Background(), fastConfig(), func(context.Context) error {
		callCount++
		return NewShellError("probe", errors.New("connection refused"), ErrCodeNetwork)
	}, "reachability")

	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if callCount != 3 {
		t.Errorf("Expected 3 attempts, got %d", callCount)
	}
	if !strings.Contains(err.Error(), "operation 'reachability' failed after 3 attempts") {
		t.Errorf("Unexpected error message %q", err.Error())
	}
	if !IsNetwork(err) {
		t.Error("Expected wrapped network error to stay classifiable")
	}
}

func TestWithRetry_ContextCancellation(t *testing.T) {
	config := fastConfig()
	config.InitialDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0
	err := WithRetry(ctx, config, func(context.Context) error {
		callCount++
		cancel()
		return NewShellError("probe", errors.New("timeout"), ErrCodeTimeout)
	})

	if !IsCancelled(err) {
		t.Errorf("Expected cancelled error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected error to wrap context.Canceled, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 attempt before cancellation, got %d", callCount)
	}
}

func TestWithRetry_NilConfig(t *testing.T) {
	if err := WithRetry(context.Background(), nil, func(context.Context) error { return nil }); err != nil {
		t.Errorf("Expected nil config to use defaults, got %v", err)
	}
}

func TestShouldRetry(t *testing.T) {
	config := DefaultRetryConfig()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", NewShellError("op", nil, ErrCodeNetwork), true},
		{"timeout", NewShellError("op", nil, ErrCodeTimeout), true},
		{"navigation", NewShellError("op", nil, ErrCodeNavigation), false},
		{"wrapped network", fmt.Errorf("outer: %w", NewShellError("op", nil, ErrCodeNetwork)), true},
		{"plain", errors.New("plain"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldRetry(tt.err, config); got != tt.want {
				t.Errorf("shouldRetry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateDelay(t *testing.T) {
	config := &RetryConfig{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      300 * time.Millisecond,
		BackoffFactor: 2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 300 * time.Millisecond},
		{5, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := calculateDelay(tt.attempt, config); got != tt.want {
			t.Errorf("calculateDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestCalculateDelay_WithJitter(t *testing.T) {
	config := &RetryConfig{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2.0,
		Jitter:        true,
	}

	for i := 0; i < 20; i++ {
		got := calculateDelay(0, config)
		if got < 100*time.Millisecond || got > 125*time.Millisecond {
			t.Fatalf("Jittered delay %v outside [100ms, 125ms]", got)
		}
	}
}

func TestRetryLogger_ReceivesAttempts(t *testing.T) {
	rec := testutils.NewRecordingLogger()
	SetDefaultRetryLogger(rec)
	t.Cleanup(func() { SetRetryLogger(nil) })

	callCount := 0
	_ = WithRetryContext(context.Background(), fastConfig(), func(context.Context) error {
		callCount++
		if callCount == 1 {
			return NewShellError("probe", errors.New("timeout"), ErrCodeTimeout)
		}
		return nil
	}, "reachability")

	if !rec.Contains("WARN", "operation 'reachability' failed (attempt 1/3)") {
		t.Errorf("Expected retry attempt to be logged, got %v", rec.Calls(""))
	}
	if !rec.Contains("WARN", "succeeded after 2 attempts") {
		t.Errorf("Expected success after retry to be logged, got %v", rec.Calls(""))
	}
}

func TestLogRetryMessage_NilLogger(t *testing.T) {
	SetRetryLogger(nil)
	logRetryMessage("no logger %d", 1)
}
