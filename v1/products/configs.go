package products

import (
	"os"
	"strconv"
	"time"
)

// Config holds connection and behavior settings for the product vector store.
//
// All environment reads happen in FromEnv; nothing else in the package
// touches the environment.
//
// Example (programmatic):
//
//	cfg := products.DefaultConfig()
//	cfg.Endpoint = "qdrant.internal"
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
//
// Example (builder style):
//
//	cfg := products.FromEnv().
//	    WithCollection("products_eu").
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Collection name this service operates on. Defaults to "products".
	Collection string `yaml:"collection" env:"PRODUCTS_COLLECTION"`

	// Explicit embedding dimension override. Zero means unset; the
	// dimension is then observed from the backend or inferred from the
	// first vector seen.
	VectorDimension uint64 `yaml:"vector_dimension" env:"PRODUCTS_VECTOR_DIMENSION"`

	// Maximum request duration before timing out.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		Collection:         "products",
		Timeout:            5 * time.Second,
		CheckCompatibility: true,
	}
}

// FromEnv builds a Config from environment variables on top of the
// defaults. The dimension override honors PRODUCTS_VECTOR_DIMENSION first
// and the legacy QDRANT_VECTOR_SIZE second; the first positive integer
// wins, anything else leaves the dimension unset.
func FromEnv() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("QDRANT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("QDRANT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}
	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
	if v := os.Getenv("PRODUCTS_COLLECTION"); v != "" {
		cfg.Collection = v
	}
	cfg.VectorDimension = dimensionFromEnv()

	return cfg
}

// dimensionFromEnv resolves the dimension override aliases.
func dimensionFromEnv() uint64 {
	for _, key := range []string{"PRODUCTS_VECTOR_DIMENSION", "QDRANT_VECTOR_SIZE"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithCollection(name string) *Config {
	c.Collection = name
	return c
}

func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithVectorDimension(size uint64) *Config {
	c.VectorDimension = size
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}
