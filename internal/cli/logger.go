package cli

import (
	"io"

	"github.com/google/uuid"

	"github.com/sdejongh/sizediff/pkg/config"
	"github.com/sdejongh/sizediff/pkg/logging"
)

// createLogger combines the console logger and the optional file logger.
// Every entry carries the command name and a run id.
func createLogger(cfg *config.Config, stderr io.Writer, command string) (logging.Logger, error) {
	var loggers []logging.Logger

	if !globalFlags.Quiet {
		level := logging.WarnLevel
		if globalFlags.Verbose {
			level = logging.DebugLevel
		}
		loggers = append(loggers, logging.NewConsoleLogger(stderr, level))
	}

	if cfg.Logging.File != "" {
		format := logging.FormatText
		if cfg.Logging.Format == "json" {
			format = logging.FormatJSON
		}

		fileLogger, err := logging.NewFileLogger(logging.FileLoggerConfig{
			Path:       cfg.Logging.File,
			Format:     format,
			Level:      logging.ParseLevel(cfg.Logging.Level),
			MaxSize:    10 * 1024 * 1024, // 10 MB
			MaxBackups: 5,
		})
		if err != nil {
			return nil, err
		}
		loggers = append(loggers, fileLogger)
	}

	return logging.NewMultiLogger(loggers...).WithFields(logging.Fields{
		"run_id":  uuid.New().String(),
		"command": command,
	}), nil
}
