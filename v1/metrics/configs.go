package metrics

import "os"

// Config holds the metrics server settings.
type Config struct {
	// Address is the listen address of the /metrics endpoint.
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// ServiceName is attached to every metric as a constant label.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// EnableDefaultCollectors registers the standard Go, process, and
	// build-info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors"`
}

// NewConfig reads the metrics configuration from the environment.
func NewConfig() Config {
	addr := os.Getenv("METRICS_ADDRESS")
	if addr == "" {
		addr = ":9090"
	}
	return Config{
		Address:                 addr,
		ServiceName:             os.Getenv("SERVICE_NAME"),
		EnableDefaultCollectors: true,
	}
}
