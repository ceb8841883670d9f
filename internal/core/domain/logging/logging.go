package logging

import "context"

type LogEntry struct {
	Key   string
	Value interface{}
}

func Entry(k string, v interface{}) LogEntry {
	return LogEntry{Key: k, Value: v}
}

// Logger implementations must add the entries attached to ctx with
// WithEntries to every record.
type Logger interface {
	Debug(ctx context.Context, msg string, entries ...LogEntry)
	Info(ctx context.Context, msg string, entries ...LogEntry)
	Warning(ctx context.Context, msg string, entries ...LogEntry)
	Error(ctx context.Context, msg string, entries ...LogEntry)
}

// Error logs an unexpected error with the standard message.
func Error(ctx context.Context, log Logger, err error, entries ...LogEntry) {
	log.Error(ctx, "Unexpected error occurred.", append(entries, Entry("err", err))...)
}

type entriesKey struct{}

// WithEntries returns a copy of ctx carrying entries in addition to the
// ones already attached to it.
func WithEntries(ctx context.Context, entries ...LogEntry) context.Context {
	if len(entries) == 0 {
		return ctx
	}
	parent := EntriesFrom(ctx)
	merged := make([]LogEntry, 0, len(parent)+len(entries))
	merged = append(merged, parent...)
	merged = append(merged, entries...)
	return context.WithValue(ctx, entriesKey{}, merged)
}

func EntriesFrom(ctx context.Context) []LogEntry {
	if ctx == nil {
		return nil
	}
	entries, _ := ctx.Value(entriesKey{}).([]LogEntry)
	return entries
}
