package logger

import (
	"context"
	"errors"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
)

// mockLogLevel is a valid zapcore.Level value for testing.
const mockLogLevel int8 = 0 // zapcore.InfoLevel

func TestGetReturnsLoggerInstance(t *testing.T) {
	logger := Get(mockLogLevel)
	if logger == nil {
		t.Fatal("Get should return a non-nil logger")
	}
}

func TestGetReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Get(mockLogLevel)
	logger2 := Get(mockLogLevel)
	if logger1 != logger2 {
		t.Error("Get should return the same logger instance on subsequent calls")
	}
}

func TestWithLoggerAddsLoggerToContext(t *testing.T) {
	ctx := context.Background()
	logger := Get(mockLogLevel)
	newCtx := WithLogger(ctx, logger)

	got := newCtx.Value(loggerContextKey{})
	if got == nil {
		t.Fatal("WithLogger should add logger to context")
	}
	if got != logger {
		t.Error("WithLogger should store the provided logger in context")
	}
}

func TestWithLoggerReturnsSameContextIfLoggerAlreadySet(t *testing.T) {
	ctx := context.Background()
	logger := Get(mockLogLevel)
	ctxWithLogger := context.WithValue(ctx, loggerContextKey{}, logger)

	resultCtx := WithLogger(ctxWithLogger, logger)
	if resultCtx != ctxWithLogger {
		t.Error("WithLogger should return the same context if logger is already set and matches")
	}
}

func TestFromContextReturnsContextLogger(t *testing.T) {
	discard := logr.Discard()
	ctx := WithLogger(context.Background(), &discard)
	if got := FromContext(ctx); got != &discard {
		t.Error("FromContext should return the logger stored in the context")
	}
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	logger := Get(mockLogLevel)
	if got := FromContext(context.Background()); got != logger {
		t.Error("FromContext should fall back to the global logger")
	}
}

func TestIsIgnorableSyncError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "ENOTTY", err: syscall.ENOTTY, want: true},
		{name: "EINVAL", err: syscall.EINVAL, want: true},
		{name: "wrapped EBADF", err: errors.New("sync /dev/stderr: bad file descriptor"), want: false},
		{name: "invalid argument text", err: errors.New("sync /dev/stderr: invalid argument"), want: true},
		{name: "unrelated", err: errors.New("disk full"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isIgnorableSyncError(tt.err); got != tt.want {
				t.Errorf("isIgnorableSyncError(%v) = %v; want %v", tt.err, got, tt.want)
			}
		})
	}
}
