package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/davfind/internal/models"
)

// FileLogger logs search events to files in a log directory.
// It creates one timestamped log file per run and maintains a latest.log
// symlink pointing to the most recent run.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger that writes to .davfind/logs/ at "info".
func NewFileLogger(runID string) (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(filepath.Join(".davfind", "logs"), "info", runID)
}

// NewFileLoggerWithDirAndLevel creates a FileLogger with a custom log directory and level.
// runID is recorded in the log header.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// run-YYYYMMDD-HHMMSS.log, with a numeric suffix when two runs share a second
	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))
	for i := 1; fileExists(runFile); i++ {
		runFile = filepath.Join(logDir, fmt.Sprintf("run-%s-%d.log", timestamp, i))
	}

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== davfind Run Log ===\n")
	if runID != "" {
		logger.writeRunLog(fmt.Sprintf("Run ID: %s\n", runID))
	}
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !enabled(fl.logLevel, strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogIdentifierStart logs the start of an identifier's search at INFO level.
func (fl *FileLogger) LogIdentifierStart(identifier string, roots []string) {
	if !enabled(fl.logLevel, "info") {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] %s: Starting search (%s)\n", timestamp(), identifier, strings.Join(roots, ", ")))
}

// LogIdentifierComplete logs an identifier's results at INFO level.
func (fl *FileLogger) LogIdentifierComplete(result models.IdentifierResult, done, total int) {
	if !enabled(fl.logLevel, "info") {
		return
	}
	fl.writeRunLog(fmt.Sprintf(
		"[%s] %s: Found %d matching files. (dirs: %d, entries: %d, excluded: %d, failures: %d, duration: %s) [%d/%d]\n",
		timestamp(),
		result.Identifier,
		result.Matches,
		result.DirsListed,
		result.EntriesSeen,
		result.Excluded,
		result.ListingFailures,
		formatDuration(result.Duration),
		done,
		total,
	))
}

// LogSummary logs the run summary at INFO level.
func (fl *FileLogger) LogSummary(summary models.Summary) {
	if !enabled(fl.logLevel, "info") {
		return
	}

	ts := timestamp()
	status := "SUCCESS"
	if summary.ListingFailures > 0 {
		status = "PARTIAL"
	}

	message := fmt.Sprintf(
		"\n[%s] === SEARCH SUMMARY ===\n"+
			"[%s] Identifiers:       %d\n"+
			"[%s] Directories:       %d\n"+
			"[%s] Entries seen:      %d\n"+
			"[%s] Matches:           %d\n"+
			"[%s] Listing failures:  %d\n"+
			"[%s] Total time:        %s\n"+
			"[%s] Status:            %s\n"+
			"[%s] Completed at:      %s\n",
		ts,
		ts, summary.Identifiers,
		ts, summary.DirsListed,
		ts, summary.EntriesSeen,
		ts, summary.Matches,
		ts, summary.ListingFailures,
		ts, formatDuration(summary.Duration),
		ts, status,
		ts, time.Now().Format(time.RFC3339),
	)

	fl.writeRunLog(message)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog writes to the run log file, flushing after each write.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
