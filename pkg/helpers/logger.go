package helpers

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Layer tags timing events with the part of the stack that produced them.
type Layer string

const (
	LayerController Layer = "controller"
	LayerUseCase    Layer = "use_case"
	LayerRepository Layer = "repository"
	LayerProvider   Layer = "provider"
)

// NewLogger creates the process logger: text in development, JSON elsewhere.
// An unparsable level falls back to debug in development and info otherwise.
func NewLogger(appName, env, level string) *logrus.Logger {
	return newLogger(os.Stdout, appName, env, level)
}

func newLogger(out io.Writer, appName, env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}
	if lvl, err := logrus.ParseLevel(level); err == nil && level != "" {
		logger.SetLevel(lvl)
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}

// LogError logs msg at error level with err attached.
func LogError(logger logrus.FieldLogger, msg string, err error, fields logrus.Fields) {
	if logger == nil {
		return
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.WithFields(fields).Error(msg)
}

// LogDebug records a failure below the boundary that reports it at error level.
func LogDebug(logger logrus.FieldLogger, msg string, err error, fields logrus.Fields) {
	if logger == nil {
		return
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.WithFields(fields).Debug(msg)
}

// LogTime emits the timing event for one operation of a layer.
func LogTime(logger logrus.FieldLogger, layer Layer, name, method string, started time.Time, ok bool) {
	if logger == nil {
		return
	}
	logger.WithFields(logrus.Fields{
		"layer":         string(layer),
		"name":          name,
		"method":        method,
		"runtime_in_ms": time.Since(started).Milliseconds(),
		"is_success":    ok,
	}).Info(string(layer) + " timing")
}
