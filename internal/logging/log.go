// Package logging wraps go.uber.org/zap the way the teacher's
// internal/logging package does: a named, cloneable Logger with a
// mutable level, so every component can carry its own hierarchical name
// (e.g. "matching.book") while sharing one process-wide sink.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors zapcore.Level so callers never need to import zap
// directly just to set a level.
type Level int8

const (
	DebugLevel Level = -1
	InfoLevel  Level = 0
	WarnLevel  Level = 1
	ErrorLevel Level = 2
	PanicLevel Level = 4
	FatalLevel Level = 5
)

func (l Level) zapLevel() zapcore.Level { return zapcore.Level(l) }

// Logger embeds *zap.Logger and adds the naming/cloning conveniences the
// matching engine's sub-packages rely on.
type Logger struct {
	*zap.Logger
	config *zap.Config
	name   string
}

// New builds a Logger around an existing zap core and config, as the
// teacher's constructor does, so callers can plug in custom encoders.
func New(core zapcore.Core, cfg *zap.Config) *Logger {
	return &Logger{Logger: zap.New(core), config: cfg}
}

// NewProduction returns a JSON-encoded, InfoLevel logger writing to
// stdout/stderr, matching the teacher's "default" env branch.
func NewProduction() *Logger {
	return newFromEnv("prod")
}

// NewDevelopment returns a console-encoded, DebugLevel logger, matching
// the teacher's "dev" env branch.
func NewDevelopment() *Logger {
	return newFromEnv("dev")
}

func newFromEnv(env string) *Logger {
	var (
		encoderConfig zapcore.EncoderConfig
		encoder       zapcore.Encoder
		config        zap.Config
		level         zapcore.Level
	)
	switch env {
	case "dev":
		encoderConfig = zapcore.EncoderConfig{
			CallerKey:      "C",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "L",
			LineEnding:     "\n",
			MessageKey:     "M",
			NameKey:        "N",
			TimeKey:        "T",
		}
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		level = DebugLevel.zapLevel()
		config = zap.Config{
			Level:            zap.NewAtomicLevelAt(level),
			Development:      true,
			Encoding:         "console",
			EncoderConfig:    encoderConfig,
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		}
	default:
		encoderConfig = zapcore.EncoderConfig{
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeName:     zapcore.FullNameEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "level",
			LineEnding:     "\n",
			MessageKey:     "message",
			NameKey:        "logger",
			StacktraceKey:  "stacktrace",
			TimeKey:        "@timestamp",
		}
		encoder = zapcore.NewJSONEncoder(encoderConfig)
		level = InfoLevel.zapLevel()
		config = zap.Config{
			Level:            zap.NewAtomicLevelAt(level),
			Development:      false,
			Encoding:         "json",
			EncoderConfig:    encoderConfig,
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		}
	}
	core := zapcore.NewCore(encoder, os.Stdout, level)
	return New(core, &config)
}

func (log *Logger) Clone() *Logger {
	newConfig := cloneConfig(log.config)
	newLogger, err := newConfig.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{Logger: newLogger, config: newConfig, name: log.name}
}

func (log *Logger) GetLevel() Level { return Level(log.config.Level.Level()) }

func (log *Logger) SetLevel(level Level) {
	if log.config.Level.Level() == level.zapLevel() {
		return
	}
	log.config.Level.SetLevel(level.zapLevel())
}

func (log *Logger) Named(name string) *Logger {
	c := log.Clone()
	newName := name
	if log.name != "" {
		newName = fmt.Sprintf("%s.%s", log.name, name)
	}
	return &Logger{Logger: c.Logger.Named(newName), config: c.config, name: newName}
}

// AtExit flushes buffered log entries; call with defer at process exit.
func (log *Logger) AtExit() {
	if log.Logger != nil {
		_ = log.Logger.Sync()
	}
}

func cloneConfig(cfg *zap.Config) *zap.Config {
	c := zap.Config{
		Level:             zap.NewAtomicLevelAt(cfg.Level.Level()),
		Development:       cfg.Development,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		Encoding:          cfg.Encoding,
		EncoderConfig:     cfg.EncoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  cfg.ErrorOutputPaths,
		InitialFields:     make(map[string]interface{}),
	}
	for k, v := range cfg.InitialFields {
		c.InitialFields[k] = v
	}
	if cfg.Sampling != nil {
		c.Sampling = &zap.SamplingConfig{Initial: cfg.Sampling.Initial, Thereafter: cfg.Sampling.Thereafter}
	}
	return &c
}
