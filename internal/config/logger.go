package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger: human readable console output plus a rotated log file.
// An empty LogFile keeps console output only.
func SetupLogger(cfg Config) zerolog.Logger {
	return setupLogger(cfg, os.Stderr)
}

func setupLogger(cfg Config, out io.Writer) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	writers := []io.Writer{console}
	if cfg.LogFile != "" {
		_ = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755)
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(lvl).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
