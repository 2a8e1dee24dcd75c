package bootstrap

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// BuildLogger configures logrus from the log section. When log.file is set
// entries go to stdout and a rotated file.
func BuildLogger(cfg config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	switch cfg.Log.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	case "console", "":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		return nil, errors.New("log format error: supported values are console or json")
	}

	if cfg.Log.File != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		}))
	}
	return log, nil
}
