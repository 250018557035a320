package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", config.MaxAttempts)
	}
	if config.InitialBackoff != 1*time.Second {
		t.Errorf("InitialBackoff = %v, want 1s", config.InitialBackoff)
	}
	if config.BackoffMultiplier != 2.0 {
		t.Errorf("BackoffMultiplier = %v, want 2.0", config.BackoffMultiplier)
	}
}

func TestRetryConfigForClass(t *testing.T) {
	tests := []struct {
		name            string
		class           ErrorClass
		expectedInitial time.Duration
		expectedMax     time.Duration
	}{
		{"server error config", ErrorClassServer, 1 * time.Second, 10 * time.Second},
		{"quota config backs off longest", ErrorClassQuota, 5 * time.Second, 60 * time.Second},
		{"network error config", ErrorClassNetwork, 2 * time.Second, 30 * time.Second},
		{"unknown class uses default", "", 1 * time.Second, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := retryConfigForClass(tt.class)

			if config.InitialBackoff != tt.expectedInitial {
				t.Errorf("InitialBackoff = %v, want %v", config.InitialBackoff, tt.expectedInitial)
			}
			if config.MaxBackoff != tt.expectedMax {
				t.Errorf("MaxBackoff = %v, want %v", config.MaxBackoff, tt.expectedMax)
			}
		})
	}
}

func TestRetryWithBackoff_Success(t *testing.T) {
	callCount := 0
	err := retryWithBackoff(context.Background(), func() error {
		callCount++
		return nil
	}, classifyError)

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if callCount != 1 {
		t.Errorf("calls = %d, want 1", callCount)
	}
}

func TestRetryWithBackoff_ClientErrorNotRetried(t *testing.T) {
	inner := &googleapi.Error{Code: 400}
	callCount := 0

	err := retryWithBackoff(context.Background(), func() error {
		callCount++
		return inner
	}, classifyError)

	if !errors.Is(err, inner) {
		t.Errorf("error = %v, want the client error unchanged", err)
	}
	if callCount != 1 {
		t.Errorf("calls = %d, want 1 (client errors must not be retried)", callCount)
	}
}

func TestRetryWithBackoff_SuccessAfterRetry(t *testing.T) {
	callCount := 0
	err := retryWithBackoff(context.Background(), func() error {
		callCount++
		if callCount < 2 {
			return &googleapi.Error{Code: 503}
		}
		return nil
	}, classifyError)

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if callCount != 2 {
		t.Errorf("calls = %d, want 2", callCount)
	}
}

func TestRetryWithBackoff_Exhaustion(t *testing.T) {
	inner := &googleapi.Error{Code: 503}
	callCount := 0

	err := retryWithBackoff(context.Background(), func() error {
		callCount++
		return inner
	}, classifyError)

	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("error = %v, want ErrRetryExhausted", err)
	}
	if callCount != 3 {
		t.Errorf("calls = %d, want 3 (MaxAttempts)", callCount)
	}
}

func TestRetryWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	callCount := 0
	go func() {
		// Cancel during the first backoff wait.
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	err := retryWithBackoff(ctx, func() error {
		callCount++
		return &googleapi.Error{Code: 503}
	}, classifyError)

	if !errors.Is(err, ErrContextCancelled) {
		t.Errorf("error = %v, want ErrContextCancelled", err)
	}
	if callCount != 1 {
		t.Errorf("calls = %d, want 1", callCount)
	}
}
