package logger

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ormkit/nomen/utils"
)

// LogrusLogger implements Interface using logrus
type LogrusLogger struct {
	Logger   *logrus.Logger
	LogLevel LogLevel
}

// NewLogrusLogger creates a new logger using logrus
func NewLogrusLogger(logger *logrus.Logger, config Config) Interface {
	return &LogrusLogger{
		Logger:   logger,
		LogLevel: config.LogLevel,
	}
}

// LogMode sets the log level
func (l *LogrusLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info logs info messages
func (l *LogrusLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.entry(ctx, data).Info(msg)
	}
}

// Warn logs warning messages
func (l *LogrusLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.entry(ctx, data).Warn(msg)
	}
}

// Error logs error messages
func (l *LogrusLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.entry(ctx, data).Error(msg)
	}
}

func (l *LogrusLogger) entry(ctx context.Context, data []interface{}) *logrus.Entry {
	fields := logrus.Fields{
		"file": utils.FileWithLineNum(),
	}
	if len(data) > 0 {
		fields["data"] = data
	}
	return l.Logger.WithContext(ctx).WithFields(fields)
}

// LogrusLevel converts LogLevel to logrus.Level
func LogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case Silent:
		return logrus.PanicLevel
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	case Info:
		return logrus.InfoLevel
	default:
		return logrus.InfoLevel
	}
}
