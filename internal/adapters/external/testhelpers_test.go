package external

import (
	"sync"
	"time"

	"climaterisk.app/internal/ports"
)

type observedOperation struct {
	cache     string
	operation string
	result    string
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []observedOperation
}

func (o *recordingObserver) ObserveCacheOperation(cache, operation, result string, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, observedOperation{cache: cache, operation: operation, result: result})
}

func (o *recordingObserver) results() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.ops))
	for _, op := range o.ops {
		out = append(out, op.operation+":"+op.result)
	}
	return out
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: m})
}

func (l *recordingLogger) Debug(msg string, fields ...ports.Field) { l.record("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields ...ports.Field)  { l.record("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields ...ports.Field)  { l.record("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields ...ports.Field) { l.record("error", msg, fields) }
