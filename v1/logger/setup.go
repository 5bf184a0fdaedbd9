package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around Uber's Zap logger with a map-based
// field API that keeps call sites terse.
type Logger struct {
	// Zap is the underlying zap.Logger, exposed for the rare case where
	// Zap-specific functionality is needed directly.
	Zap *zap.Logger
}

// NewLoggerClient builds a production JSON logger from Config.
//
// The logger writes to stderr with ISO8601 timestamps, capital level
// names, caller information, and the service name plus process id as
// constant fields. Initialization failure is fatal: a service without a
// logger is not worth starting.
func NewLoggerClient(cfg Config) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	level := zap.InfoLevel
	switch cfg.Level {
	case Debug:
		level = zap.DebugLevel
	case Warning:
		level = zap.WarnLevel
	case Error:
		level = zap.ErrorLevel
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	z, err := zapCfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &Logger{Zap: z}
}
