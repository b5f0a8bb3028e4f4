package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls where run logs go
type Options struct {
	// Dir receives the log file. It is created when missing.
	Dir string
	// Level is a zerolog level name. Defaults to debug.
	Level string
	// Console receives human readable output. Defaults to stdout.
	Console io.Writer
}

// RunLogger owns the log file of a single generation run
type RunLogger struct {
	runID     string
	path      string
	logFile   *os.File
	startTime time.Time
	once      sync.Once
}

// Setup creates a timestamped log file under opts.Dir and points the global
// zerolog logger at both the console and that file.
func Setup(opts Options) (*RunLogger, error) {
	level := zerolog.DebugLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	startTime := time.Now()
	logFileName := fmt.Sprintf("test_generation_%s.log", startTime.Format("20060102_150405"))
	logPath := filepath.Join(opts.Dir, logFileName)

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	r := &RunLogger{
		runID:     uuid.NewString(),
		path:      logPath,
		logFile:   logFile,
		startTime: startTime,
	}

	writer := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: console, TimeFormat: "2006-01-02 15:04:05"},
		logFile,
	)
	log.Logger = zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("run_id", r.runID).
		Logger()

	log.Info().Str("log_file", logPath).Msg("Logging initialized")
	return r, nil
}

// RunID returns the identifier attached to every log line of this run
func (r *RunLogger) RunID() string {
	return r.runID
}

// Path returns the log file location
func (r *RunLogger) Path() string {
	return r.path
}

// Close writes the run duration and closes the log file
func (r *RunLogger) Close() error {
	var err error
	r.once.Do(func() {
		log.Info().Dur("duration", time.Since(r.startTime)).Msg("Run finished")
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		err = r.logFile.Close()
	})
	return err
}
