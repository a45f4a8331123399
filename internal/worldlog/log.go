// Package worldlog wraps logrus the way r3e-network-service_layer's
// pkg/logger wraps it: a small struct holding a configured *logrus.Logger,
// built from a plain config struct rather than global init magic.
package worldlog

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config controls level and format the same way the rest of the retrieved
// pack configures logrus/zerolog/zap loggers.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Logger wraps *logrus.Logger with the fields the simulation core attaches
// to every diagnostic: tick and subsystem.
type Logger struct {
	*logrus.Logger
}

// New builds a Logger from cfg. An unparseable level falls back to Info
// rather than failing construction.
func New(cfg Config) *Logger {
	l := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetOutput(os.Stdout)
	return &Logger{Logger: l}
}

var defaultLogger = New(Config{Level: "info", Format: "text"})

// Default returns a package-wide logger for callers that don't have a
// configured one threaded through yet (e.g. a Bus built without an
// explicit Config). Components that own their lifecycle should prefer
// constructing their own Logger via New.
func Default() *Logger {
	return defaultLogger
}

// WithTick returns an entry tagged with the current simulation tick, the
// shape the engine logs a system's execute-phase SystemExecutionFailed
// warning under.
func (l *Logger) WithTick(tick uint64) *logrus.Entry {
	return l.WithField("tick", tick)
}

// WithSystem returns an entry tagged with a system name.
func (l *Logger) WithSystem(name string) *logrus.Entry {
	return l.WithField("system", name)
}
