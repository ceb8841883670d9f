package logging

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const (
	DEBUG   = "debug"
	INFO    = "info"
	WARNING = "warning"
	ERROR   = "error"
)

type FakeLoggerRecord struct {
	Level   string
	Msg     string
	Entries []LogEntry
}

type FakeLogger struct {
	Logged []FakeLoggerRecord
	lock   sync.RWMutex
}

func NewFakeLogger() *FakeLogger {
	return &FakeLogger{}
}

func (l *FakeLogger) Debug(ctx context.Context, msg string, entries ...LogEntry) {
	l.log(ctx, DEBUG, msg, entries...)
}

func (l *FakeLogger) Info(ctx context.Context, msg string, entries ...LogEntry) {
	l.log(ctx, INFO, msg, entries...)
}

func (l *FakeLogger) Warning(ctx context.Context, msg string, entries ...LogEntry) {
	l.log(ctx, WARNING, msg, entries...)
}

func (l *FakeLogger) Error(ctx context.Context, msg string, entries ...LogEntry) {
	l.log(ctx, ERROR, msg, entries...)
}

func (l *FakeLogger) log(ctx context.Context, level string, msg string, entries ...LogEntry) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.Logged = append(l.Logged, FakeLoggerRecord{
		Level:   level,
		Msg:     msg,
		Entries: append(EntriesFrom(ctx), entries...),
	})
}

func (l *FakeLogger) CountOf(level string) int {
	l.lock.RLock()
	defer l.lock.RUnlock()
	count := 0
	for _, record := range l.Logged {
		if record.Level == level {
			count++
		}
	}
	return count
}

// Contains reports whether s occurs in any logged message or formatted entry value.
func (l *FakeLogger) Contains(s string) bool {
	l.lock.RLock()
	defer l.lock.RUnlock()
	for _, record := range l.Logged {
		if strings.Contains(record.Msg, s) {
			return true
		}
		for _, entry := range record.Entries {
			if strings.Contains(fmt.Sprintf("%v", entry.Value), s) {
				return true
			}
			if strings.Contains(fmt.Sprintf("%+v", entry.Value), s) {
				return true
			}
		}
	}
	return false
}
