// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without a real browser.
package testutil

import (
	"sync"

	"github.com/raysh454/webshot/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// LogEntry is one recorded log call.
type LogEntry struct {
	Level  string
	Msg    string
	Fields map[string]any
}

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu      sync.Mutex
	entries []LogEntry
	Errors  []string
	Infos   []string
	Debugs  []string
	Warns   []string
}

func (l *DummyLogger) record(level, msg string, fields []logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Fields: m})
	switch level {
	case "debug":
		l.Debugs = append(l.Debugs, msg)
	case "info":
		l.Infos = append(l.Infos, msg)
	case "warn":
		l.Warns = append(l.Warns, msg)
	case "error":
		l.Errors = append(l.Errors, msg)
	}
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) { l.record("debug", msg, fields) }
func (l *DummyLogger) Info(msg string, fields ...logging.Field)  { l.record("info", msg, fields) }
func (l *DummyLogger) Warn(msg string, fields ...logging.Field)  { l.record("warn", msg, fields) }
func (l *DummyLogger) Error(msg string, fields ...logging.Field) { l.record("error", msg, fields) }

// With returns a child that records into the parent, adding its persistent
// fields to every entry.
func (l *DummyLogger) With(fields ...logging.Field) logging.Logger {
	return &childLogger{parent: l, fields: append([]logging.Field(nil), fields...)}
}

// Entries returns a copy of everything recorded so far.
func (l *DummyLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

type childLogger struct {
	parent *DummyLogger
	fields []logging.Field
}

func (c *childLogger) log(level, msg string, fields []logging.Field) {
	all := append(append([]logging.Field(nil), c.fields...), fields...)
	c.parent.record(level, msg, all)
}

func (c *childLogger) Debug(msg string, fields ...logging.Field) { c.log("debug", msg, fields) }
func (c *childLogger) Info(msg string, fields ...logging.Field)  { c.log("info", msg, fields) }
func (c *childLogger) Warn(msg string, fields ...logging.Field)  { c.log("warn", msg, fields) }
func (c *childLogger) Error(msg string, fields ...logging.Field) { c.log("error", msg, fields) }

func (c *childLogger) With(fields ...logging.Field) logging.Logger {
	return &childLogger{parent: c.parent, fields: append(append([]logging.Field(nil), c.fields...), fields...)}
}
