// Package log provides logging to both console and file.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// FileName is the name of the log file inside the log directory.
const FileName = "cleanos.log"

// Logger writes output to both console and a log file.
type Logger struct {
	file    *os.File
	writer  io.Writer
	errOut  io.Writer
	debugOn atomic.Bool
}

// New creates a logger that writes to both console and a log file in logDir.
func New(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, FileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		file:   file,
		writer: io.MultiWriter(os.Stdout, file),
		errOut: os.Stderr,
	}, nil
}

// Quiet stops console output; messages still reach the log file.
// The TUI calls this before taking over the terminal.
func (l *Logger) Quiet() {
	l.writer = l.file
	l.errOut = io.Discard
}

// SetDebug enables or disables Debugf output.
func (l *Logger) SetDebug(on bool) {
	l.debugOn.Store(on)
}

// Printf writes a formatted message to console and log file.
func (l *Logger) Printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(l.writer, format, args...)
}

// Println writes a message to console and log file with a newline.
func (l *Logger) Println(args ...interface{}) {
	_, _ = fmt.Fprintln(l.writer, args...)
}

// Errorf writes a timestamped error message to stderr and log file.
func (l *Logger) Errorf(format string, args ...interface{}) {
	formatted := stamp(format, args...)
	_, _ = fmt.Fprint(l.errOut, formatted)
	_, _ = fmt.Fprint(l.file, formatted)
}

// Debugf writes a timestamped message to the log file only, when debug
// output is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.debugOn.Load() {
		return
	}
	_, _ = fmt.Fprint(l.file, stamp("debug: "+format, args...))
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func stamp(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	return fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), msg)
}

var globalLogger *Logger

// Init initializes the global logger.
// Go's standard log package is redirected to the log file so stray
// log.Printf calls don't corrupt the TUI.
func Init(logDir string, debug bool) error {
	logger, err := New(logDir)
	if err != nil {
		return err
	}
	logger.SetDebug(debug)
	globalLogger = logger

	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)

	return nil
}

// Quiet silences console output of the global logger.
func Quiet() {
	if globalLogger != nil {
		globalLogger.Quiet()
	}
}

// Printf uses the global logger to print formatted output.
func Printf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Printf(format, args...)
	} else {
		fmt.Printf(format, args...)
	}
}

// Println uses the global logger to print output with newline.
func Println(args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Println(args...)
	} else {
		fmt.Println(args...)
	}
}

// Errorf uses the global logger to print formatted error output.
func Errorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	} else {
		fmt.Fprint(os.Stderr, stamp(format, args...))
	}
}

// Debugf uses the global logger to record debug output. Without a global
// logger it is a no-op.
func Debugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}
