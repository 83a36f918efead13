package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/transit-journal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUserError("Failed to load transits. Please try again later.", cause)

	assert.Equal(t, "Failed to load transits. Please try again later.: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to load transits. Please try again later.", UserMessage(fmt.Errorf("wrapped: %w", err), "fallback"))
	assert.Equal(t, "fallback", UserMessage(cause, "fallback"))
}

func TestStatusError(t *testing.T) {
	assert.ErrorIs(t, StatusError(http.StatusNotFound), ErrNotFound)
	assert.ErrorIs(t, StatusError(http.StatusTooManyRequests), ErrRateLimit)
	assert.ErrorIs(t, StatusError(http.StatusBadGateway), ErrServer)
	assert.ErrorIs(t, StatusError(http.StatusBadRequest), ErrInvalidRequest)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "server", err: fmt.Errorf("boom: %w", ErrServer), want: true},
		{name: "transport", err: ErrTransport, want: true},
		{name: "rate limit", err: ErrRateLimit, want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "not found", err: ErrNotFound, want: false},
		{name: "explicit retryable", err: &RetryableError{Err: errors.New("x"), Retryable: true}, want: true},
		{name: "explicit permanent", err: &RetryableError{Err: errors.New("x")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return ErrServer
		}
		return nil
	}, fastRetry(3))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return ErrNotFound
	}, fastRetry(5))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_Exhausted(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return ErrTransport
	}, fastRetry(2))

	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_SingleAttemptReturnsCause(t *testing.T) {
	err := WithRetry(context.Background(), func() error { return ErrTransport }, service.RetryOptions{})
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrMaxRetries)
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error { return ErrServer }, service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLogHandler(t *testing.T) {
	var buf bytes.Buffer

	handler, err := NewLogHandler(&buf, LoggerOptions{Level: "warn", Format: "json"})
	require.NoError(t, err)

	logger := slog.New(handler)
	logger.Info("hidden")
	logger.Warn("shown", "day", "2025-03-21")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"day":"2025-03-21"`)

	_, err = NewLogHandler(&buf, LoggerOptions{Level: "loud"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewLogHandler(&buf, LoggerOptions{Format: "xml"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLogger_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "transit.log")
	closer, err := SetupLogger(LoggerOptions{Level: "debug", File: path})
	require.NoError(t, err)

	slog.Info("written to file")
	require.NoError(t, closer.Close())
	assert.FileExists(t, path)
}
