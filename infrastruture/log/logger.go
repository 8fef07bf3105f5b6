// Package logger provides the tagged, coloured logger used across the application.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/beka-birhanu/vinom-wayout/config"
	"github.com/beka-birhanu/vinom-wayout/service/i"
)

var (
	ErrNilWriter = errors.New("logger writer is nil")
)

var _ i.Logger = &Logger{}

// Logger writes lines of the form "[PREFIX] [LEVEL] message".
type Logger struct {
	l *log.Logger
}

// New creates a Logger that tags every line with prefix in the given color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	tag := fmt.Sprintf("[%s] ", prefix)
	if color != "" {
		tag = fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset)
	}

	return &Logger{l: log.New(w, tag, log.LstdFlags)}, nil
}

// Info logs an informational message.
func (lg *Logger) Info(msg string) {
	lg.l.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, msg)
}

// Warning logs a recoverable problem.
func (lg *Logger) Warning(msg string) {
	lg.l.Printf("%s[WARNING]%s %s", config.LogWarningColor, config.LogColorReset, msg)
}

// Error logs a failure.
func (lg *Logger) Error(msg string) {
	lg.l.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, msg)
}
