/**************************************************************************************************
** Configuration and environment management for the shootdesk CLI.
** Handles logger configuration, environment variable loading, and global configuration state.
**************************************************************************************************/

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	defaultProbeConcurrency = 8
	defaultHTTPTimeout      = 600
)

// Global configuration variables
var apiURL string
var dryRun = true
var maxWidth int
var maxHeight int
var probeConcurrency int
var httpTimeout int
var logLevel string

/**************************************************************************************************
** Configures the logger based on flags and environment variables. The level comes from
** --log-level, then LOG_LEVEL; the format from LOG_FORMAT; LOG_FILE mirrors the output to a file.
**
** @return *logrus.Logger - Configured logger instance
**************************************************************************************************/
func configureLogger() *logrus.Logger {
	return configureLoggerWithOutput(nil)
}

/**************************************************************************************************
** configureLoggerWithOutput is configureLogger writing to the given output. A nil output means
** stdout, mirrored to LOG_FILE when it is set and writable.
**
** @param output - Destination writer, may be nil
** @return *logrus.Logger - Configured logger instance
**************************************************************************************************/
func configureLoggerWithOutput(output io.Writer) *logrus.Logger {
	logger := logrus.New()

	level := logLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if output != nil {
		logger.SetOutput(output)
	}

	if level != "" {
		if parsedLevel, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(parsedLevel)
		} else {
			logger.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", level)
			logger.SetLevel(logrus.InfoLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if format := os.Getenv("LOG_FORMAT"); format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			FullTimestamp:    false,
			TimestampFormat:  time.RFC3339,
		})
	}

	if output == nil {
		if logFile := os.Getenv("LOG_FILE"); logFile != "" {
			file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				logger.Warnf("Cannot open LOG_FILE '%s', logging to stdout only: %v", logFile, err)
			} else {
				logger.SetOutput(io.MultiWriter(os.Stdout, file))
			}
		}
	}

	return logger
}

/**************************************************************************************************
** intFromEnv fills an integer setting left unset by its flag from the environment.
**************************************************************************************************/
func intFromEnv(key string, target *int) error {
	if *target != 0 {
		return nil
	}
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid %s '%s': %w", key, val, err)
	}
	*target = intVal
	return nil
}

/**************************************************************************************************
** Loads environment variables and command-line flags, with flags taking precedence over env
** variables, and env variables over defaults.
**
** @param cmd - Command whose flags were parsed, may be nil
** @return *logrus.Logger - Configured logger
** @return error - Invalid configuration value
**************************************************************************************************/
func loadEnvWithError(cmd *cobra.Command) (*logrus.Logger, error) {
	_ = godotenv.Load()
	logger := configureLogger()

	if apiURL == "" {
		apiURL = os.Getenv("API_URL")
	}
	if apiURL == "" {
		apiURL = utils.DefaultAPIURL
	}

	if cmd == nil || !cmd.Flags().Changed("dry-run") {
		if val := os.Getenv("DRY_RUN"); val != "" {
			dryRun = val == "true"
		}
	}

	for key, target := range map[string]*int{
		"MAX_WIDTH":         &maxWidth,
		"MAX_HEIGHT":        &maxHeight,
		"PROBE_CONCURRENCY": &probeConcurrency,
		"HTTP_TIMEOUT":      &httpTimeout,
	} {
		if err := intFromEnv(key, target); err != nil {
			return logger, err
		}
	}
	if maxWidth < 0 || maxHeight < 0 {
		return logger, fmt.Errorf("import bounds must be positive, got %dx%d", maxWidth, maxHeight)
	}
	if probeConcurrency <= 0 {
		probeConcurrency = defaultProbeConcurrency
	}
	if httpTimeout <= 0 {
		httpTimeout = defaultHTTPTimeout
	}

	if dryRun {
		logger.Info("DRY_RUN is set to true, the backend will not be called")
	}
	return logger, nil
}

/**************************************************************************************************
** loadEnv is loadEnvWithError for commands: an invalid configuration stops the program.
**************************************************************************************************/
func loadEnv(cmd *cobra.Command) *logrus.Logger {
	logger, err := loadEnvWithError(cmd)
	if err != nil {
		logger.Fatal(err)
	}
	logStartupSummary(logger)
	return logger
}

/**************************************************************************************************
** logStartupSummary logs the effective configuration once, as structured fields in json format
** and as a single line otherwise.
**************************************************************************************************/
func logStartupSummary(logger *logrus.Logger) {
	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = "text"
	}

	if format == "json" {
		logger.WithFields(logrus.Fields{
			"apiURL":           apiURL,
			"dryRun":           dryRun,
			"maxWidth":         maxWidth,
			"maxHeight":        maxHeight,
			"probeConcurrency": probeConcurrency,
			"httpTimeout":      httpTimeout,
			"logLevel":         logger.GetLevel().String(),
			"logFormat":        format,
		}).Info("Configuration loaded")
		return
	}

	logger.Infof("Starting with config: api-url=%s dry-run=%t max-width=%d max-height=%d probe-concurrency=%d http-timeout=%ds level=%s format=%s",
		apiURL, dryRun, maxWidth, maxHeight, probeConcurrency, httpTimeout, logger.GetLevel().String(), format)
}
