package embedding

import (
	"fmt"
	"os"
	"strconv"
)

// EMBEDDING_ENDPOINT must point to the root of the OpenAI-compatible inference
// service (no /v1/embeddings appended). The provider appends paths itself, so
// callers only supply the host base URL.

type Config struct {
	Endpoint     string // base URL of the inference API
	ServiceToken string // bearer token for the inference API
	TextModel    string // model used for text embeddings
	ImageModel   string // model used for image embeddings
	HTTPTimeoutS int    // HTTP timeout seconds (default 30)
	MaxParallel  int    // concurrent image requests per batch (default 4)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	timeout := 30
	if v := os.Getenv("EMBEDDING_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	parallel := 4
	if v := os.Getenv("EMBEDDING_MAX_PARALLEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			parallel = n
		}
	}

	return &Config{
		Endpoint:     os.Getenv("EMBEDDING_ENDPOINT"),
		ServiceToken: os.Getenv("EMBEDDING_SERVICE_TOKEN"),
		TextModel:    os.Getenv("EMBEDDING_TEXT_MODEL"),
		ImageModel:   os.Getenv("EMBEDDING_IMAGE_MODEL"),
		HTTPTimeoutS: timeout,
		MaxParallel:  parallel,
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
	}
	if c.TextModel == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_TEXT_MODEL")
	}
	return nil
}
