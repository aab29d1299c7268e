package logger

import (
	"io"
	"os"
	"strings"

	"github.com/fencetrade/signalboard/internal/config"
	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields type alias for logrus.Fields
type Fields = logrus.Fields

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// Setup applies the log configuration. When a file is configured the
// output is duplicated to a size-rotated file next to stdout.
func Setup(cfg config.LogConfig) {
	if lvl, err := logrus.ParseLevel(strings.ToLower(cfg.Level)); err == nil {
		log.SetLevel(lvl)
	}

	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotated))
	}
}

// Get returns the shared logger.
func Get() *logrus.Logger {
	return log
}

// WithComponent tags log entries with the originating component.
func WithComponent(component string) *logrus.Entry {
	return log.WithField("component", component)
}
