package logger

import (
	"sync"
	"testing"
)

var _ Logger = new(Test)

// Entry is a log entry recorded by the Test logger.
type Entry struct {
	Level   string
	Message string
	Fields  []Field
}

// Test is a logger.Logger implementation using testing.T instance.
//
// Entries are also recorded, so that tests can assert on them.
type Test struct {
	t *testing.T

	mx      sync.Mutex
	entries []Entry
}

// NewTest returns a new logger using the provided testing.T instance.
func NewTest(t *testing.T) *Test {
	return &Test{t: t}
}

func (t *Test) log(level, msg string, fields []Field) {
	t.t.Logf("[%s] %s {args: %+v}\n", level, msg, fields)

	t.mx.Lock()
	defer t.mx.Unlock()

	t.entries = append(t.entries, Entry{Level: level, Message: msg, Fields: fields})
}

// Debug uses t.Logf to print a debug message.
func (t *Test) Debug(msg string, fields ...Field) { t.log("debug", msg, fields) }

// Info uses t.Logf to print an info message.
func (t *Test) Info(msg string, fields ...Field) { t.log("info", msg, fields) }

// Error uses t.Logf to print an error message.
func (t *Test) Error(msg string, fields ...Field) { t.log("error", msg, fields) }

// Entries returns a copy of all the entries recorded so far.
func (t *Test) Entries() []Entry {
	t.mx.Lock()
	defer t.mx.Unlock()

	return append([]Entry(nil), t.entries...)
}
