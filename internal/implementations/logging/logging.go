package logging

import (
	"context"
	"dashboard/internal/core/domain/logging"

	"go.uber.org/zap"
)

type ZapLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// NewZapLogger builds a JSON production logger, or a console one in test mode.
func NewZapLogger(testMode bool) *ZapLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if testMode {
		logger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		logger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		panic("Could not create Zap logger.")
	}
	return NewZapLoggerFrom(logger)
}

func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger, sugar: logger.Sugar()}
}

func (l *ZapLogger) Sync() {
	l.logger.Sync()
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Debugw(msg, keysAndValues(ctx, entries)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Infow(msg, keysAndValues(ctx, entries)...)
}

func (l *ZapLogger) Warning(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Warnw(msg, keysAndValues(ctx, entries)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Errorw(msg, keysAndValues(ctx, entries)...)
}

func keysAndValues(ctx context.Context, entries []logging.LogEntry) []interface{} {
	scoped := logging.EntriesFrom(ctx)
	args := make([]interface{}, 0, (len(scoped)+len(entries))*2)
	for _, e := range append(scoped, entries...) {
		if err, ok := e.Value.(error); ok {
			args = append(args, zap.NamedError(e.Key, err))
			continue
		}
		if s, ok := e.Value.(interface{ String() string }); ok {
			args = append(args, zap.Stringer(e.Key, s))
			continue
		}
		args = append(args, e.Key, e.Value)
	}
	return args
}
