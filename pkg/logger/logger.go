package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. format is "json" or "text".
func New(level, format string) *logrus.Logger {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp:          true,
		DisableLevelTruncation: true,
	}
	if strings.EqualFold(format, "json") {
		formatter = &logrus.JSONFormatter{}
	}

	return &logrus.Logger{
		Out:       os.Stdout,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl,
	}
}

// Component scopes log lines to one service.
func Component(log *logrus.Logger, name string) *logrus.Entry {
	return log.WithField("component", name)
}
