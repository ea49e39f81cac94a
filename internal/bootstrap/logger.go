package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/config"
	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// SetupLogger initializes the application logger with file and stdout output.
// It creates the log directory, cleans up old logs and installs the slog default
// writing to both. Returns the log file handle (caller must close).
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
	}

	addSource := cfg.Environment == "dev" || cfg.Environment == "development"
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName, cfg.Version, cfg.Environment, addSource)
	logger.InitLoggerWithWriter(logCfg, io.MultiWriter(os.Stdout, logFile))

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "file", logFileName)
	slog.Info(LogMsgStartingChatterBot,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"store_driver", cfg.StoreDriver,
		"port", cfg.Port,
		"redis", cfg.RedisAddr != "",
		"discord", cfg.DiscordToken != "",
		"message_retention_days", cfg.MessageRetentionDays,
		"activity_retention_days", cfg.ActivityRetentionDays)

	return logFile, nil
}

// cleanupLogs removes old session logs so that at most keep remain. Session
// file names sort chronologically, so the oldest come first.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}
	if len(logFiles) <= keep {
		return
	}
	sort.Strings(logFiles)

	for _, name := range logFiles[:len(logFiles)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			fmt.Printf(LogMsgFailedDeleteOldLog, name, err)
		}
	}
}
