package logging

import (
	"context"
	"dashboard/internal/core/domain/logging"
	"dashboard/internal/core/domain/user"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLoggerFrom(zap.New(core)), logs
}

func TestEntriesBecomeFields(t *testing.T) {
	log, logs := newObservedLogger()

	log.Info(context.Background(), "User created.", logging.Entry("userID", 42))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "User created.", entry.Message)
	require.Equal(t, zapcore.InfoLevel, entry.Level)
	require.Equal(t, int64(42), entry.ContextMap()["userID"])
}

func TestSecretsAreMasked(t *testing.T) {
	log, logs := newObservedLogger()

	log.Warning(
		context.Background(),
		"Secrets.",
		logging.Entry("token", user.PasswordResetToken("plain-token")),
		logging.Entry("password", user.RawPassword("plain-password")),
	)

	fields := logs.All()[0].ContextMap()
	require.Equal(t, "***", fields["token"])
	require.Equal(t, "***", fields["password"])
}

func TestErrorsAreNamed(t *testing.T) {
	log, logs := newObservedLogger()

	log.Error(context.Background(), "Failed.", logging.Entry("err", errors.New("boom")))

	entry := logs.All()[0]
	require.Equal(t, zapcore.ErrorLevel, entry.Level)
	require.Equal(t, "boom", entry.ContextMap()["err"])
}

func TestContextEntriesComeFirst(t *testing.T) {
	log, logs := newObservedLogger()
	ctx := logging.WithEntries(context.Background(), logging.Entry("requestID", "req-1"))

	log.Info(ctx, "Handled.", logging.Entry("userID", 7))

	fields := logs.All()[0].ContextMap()
	require.Equal(t, "req-1", fields["requestID"])
	require.Equal(t, int64(7), fields["userID"])
}
