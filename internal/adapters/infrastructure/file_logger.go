package infrastructure

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"climaterisk.app/internal/ports"
)

// FileLoggerAdapter writes one JSON object per line to a file. It is used for
// the upstream request log, kept apart from the service log on stdout.
type FileLoggerAdapter struct {
	filePath string
	minLevel slog.Level
	now      func() time.Time
	mutex    sync.Mutex
}

// NewFileLoggerAdapter creates a file logger that records every level
func NewFileLoggerAdapter(logPath string) (*FileLoggerAdapter, error) {
	return NewFileLoggerAdapterWithLevel(logPath, slog.LevelDebug)
}

// NewFileLoggerAdapterWithLevel creates a file logger that drops entries below minLevel
func NewFileLoggerAdapterWithLevel(logPath string, minLevel slog.Level) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &FileLoggerAdapter{
		filePath: logPath,
		minLevel: minLevel,
		now:      time.Now,
	}, nil
}

func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelDebug, msg, fields...)
}

func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelInfo, msg, fields...)
}

func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelWarn, msg, fields...)
}

func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelError, msg, fields...)
}

// Path returns the file the adapter appends to
func (f *FileLoggerAdapter) Path() string {
	return f.filePath
}

func (f *FileLoggerAdapter) writeLogEntry(level slog.Level, msg string, fields ...ports.Field) {
	if level < f.minLevel {
		return
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	logEntry := map[string]interface{}{
		"timestamp": f.now().UTC().Format(time.RFC3339),
		"level":     level.String(),
		"message":   msg,
	}
	for _, field := range fields {
		if err, ok := field.Value.(error); ok && err != nil {
			logEntry[field.Key] = err.Error()
			continue
		}
		logEntry[field.Key] = field.Value
	}

	jsonData, err := json.Marshal(logEntry)
	if err != nil {
		fallback, _ := json.Marshal(map[string]string{
			"timestamp": logEntry["timestamp"].(string),
			"level":     slog.LevelError.String(),
			"message":   "failed to marshal log entry: " + err.Error(),
		})
		f.writeRawLog(string(fallback))
		return
	}

	f.writeRawLog(string(jsonData))
}

func (f *FileLoggerAdapter) writeRawLog(data string) {
	file, err := os.OpenFile(f.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", f.filePath, err)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", closeErr)
		}
	}()

	if _, err := file.WriteString(data + "\n"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}
