package config

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for logging and error reporting
type Logger struct {
	level     string
	format    string
	output    string
	sentryDSN string
	sentryEnv string
}

// Flags returns CLI flags for logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("SPENDGRAPH_LOG_LEVEL"),
			Destination: &l.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console or json)",
			Value:       "console",
			Sources:     cli.EnvVars("SPENDGRAPH_LOG_FORMAT"),
			Destination: &l.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output destination (stdout, stderr or file path)",
			Value:       "stdout",
			Sources:     cli.EnvVars("SPENDGRAPH_LOG_OUTPUT"),
			Destination: &l.output,
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled when empty)",
			Sources:     cli.EnvVars("SPENDGRAPH_SENTRY_DSN"),
			Destination: &l.sentryDSN,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Sources:     cli.EnvVars("SPENDGRAPH_SENTRY_ENV"),
			Destination: &l.sentryEnv,
		},
	}
}

// LogValue renders the configuration for startup logging
func (l *Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.level),
		slog.String("format", l.format),
		slog.String("output", l.output),
		slog.Bool("sentry", l.sentryDSN != ""),
	)
}

// Configure builds the process-wide logger and initializes Sentry when
// a DSN is given. The returned closer flushes Sentry and closes any
// opened log file.
func (l *Logger) Configure() (func(), error) {
	level, err := logging.ParseLevel(l.level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(l.format)
	if err != nil {
		return nil, err
	}

	var w io.Writer
	var fileCloser func()
	switch l.output {
	case "stdout", "":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(l.output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", l.output))
		}
		w = f
		fileCloser = func() {
			_ = f.Close()
		}
	}

	logging.SetDefault(logging.New(w, level, format))

	sentryEnabled := l.sentryDSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         l.sentryDSN,
			Environment: l.sentryEnv,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sentry")
		}
	}

	closer := func() {
		if sentryEnabled {
			sentry.Flush(2 * time.Second)
		}
		if fileCloser != nil {
			fileCloser()
		}
	}

	return closer, nil
}
