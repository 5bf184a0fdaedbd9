package logger

import "os"

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config holds the logger settings.
type Config struct {
	// Level sets the minimum level that is emitted. Defaults to info.
	Level string `yaml:"level" env:"LOG_LEVEL"`

	// ServiceName is attached to every entry as a constant field.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// NewConfig reads the logger configuration from the environment.
func NewConfig() Config {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = Info
	}
	return Config{
		Level:       level,
		ServiceName: os.Getenv("SERVICE_NAME"),
	}
}
