package mocks

import "climaterisk.app/internal/ports"

// Logger is a ports.Logger that records nothing
type Logger struct{}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Debug(msg string, fields ...ports.Field) {}
func (l *Logger) Info(msg string, fields ...ports.Field)  {}
func (l *Logger) Warn(msg string, fields ...ports.Field)  {}
func (l *Logger) Error(msg string, fields ...ports.Field) {}
