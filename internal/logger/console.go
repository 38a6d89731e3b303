// Package logger provides logging implementations for davfind runs.
//
// ConsoleLogger echoes to a terminal or any io.Writer, FileLogger keeps a
// per-run log file, and MultiLogger fans out to several loggers. All
// implementations are safe for concurrent use and filter by level.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/davfind/internal/models"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger logs search progress to a writer with timestamps.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is enabled only when writing to a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is a terminal that should receive colors.
// NO_COLOR and non-TTY output both disable color via fatih/color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !enabled(cl.logLevel, strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

func colorLevel(level string) string {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogIdentifierStart logs the start of an identifier's search at INFO level.
// Format: "[HH:MM:SS] <id>: Starting search"
func (cl *ConsoleLogger) LogIdentifierStart(identifier string, roots []string) {
	if cl.writer == nil || !enabled(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	id := identifier
	if cl.colorOutput {
		id = color.New(color.Bold).Sprint(identifier)
	}
	fmt.Fprintf(cl.writer, "[%s] %s: Starting search\n", timestamp(), id)
}

// LogIdentifierComplete logs an identifier's match count and the overall
// progress at INFO level.
// Format: "[HH:MM:SS] <id>: Found N matching files. [====      ] 2/5 (40%)"
func (cl *ConsoleLogger) LogIdentifierComplete(result models.IdentifierResult, done, total int) {
	if cl.writer == nil || !enabled(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	pb := NewProgressBar(total, 10, cl.colorOutput)
	pb.Update(done)

	found := fmt.Sprintf("Found %d matching files.", result.Matches)
	if cl.colorOutput && result.Matches > 0 {
		found = color.New(color.FgGreen).Sprint(found)
	}

	failures := ""
	if result.ListingFailures > 0 {
		failures = fmt.Sprintf(" (%d listing %s failed)", result.ListingFailures, plural(result.ListingFailures, "call", "calls"))
		if cl.colorOutput {
			failures = color.New(color.FgYellow).Sprint(failures)
		}
	}

	fmt.Fprintf(cl.writer, "[%s] %s: %s%s %s\n", timestamp(), result.Identifier, found, failures, pb.Render())
}

// LogSummary logs the run summary at INFO level.
func (cl *ConsoleLogger) LogSummary(summary models.Summary) {
	if cl.writer == nil || !enabled(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	scheme := newColorScheme(cl.colorOutput)

	header := "=== Search Summary ==="
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", ts, header)
	fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.metric("Identifiers", summary.Identifiers, scheme.value))
	fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.metric("Directories listed", summary.DirsListed, scheme.value))
	fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.metric("Entries seen", summary.EntriesSeen, scheme.value))
	fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.metric("Matches", summary.Matches, scheme.success))

	failStyle := scheme.value
	if summary.ListingFailures > 0 {
		failStyle = scheme.fail
	}
	fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.metric("Listing failures", summary.ListingFailures, failStyle))
	fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.metric("Duration", formatDuration(summary.Duration), scheme.value))

	if summary.OutputPath != "" {
		fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.metric("Output", summary.OutputPath, scheme.value))
	}
	if summary.DBPath != "" {
		fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.metric("Database", summary.DBPath, scheme.value))
	}

	if failed := summary.FailedIdentifiers(); len(failed) > 0 {
		fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.warn.Sprint("Identifiers with listing failures:"))
		for _, id := range failed {
			fmt.Fprintf(&b, "[%s]   - %s\n", ts, id)
		}
	}

	cl.writer.Write([]byte(b.String()))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}
