package products

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/search-store/v1/logger"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official Qdrant Go client.
// It establishes connectivity, validates it with an immediate health
// check, and hands the SDK client to the Service as its Backend.
//
// All product-level semantics (tenant scoping, dimension negotiation,
// error translation) live in the Service; the wrapper stays dumb on
// purpose so it can be swapped for a fake in unit tests.
//

// Client wraps the official Qdrant Go client.
type Client struct {
	api     *qdrant.Client
	cfg     *Config
	log     *logger.Logger
	started bool
}

// NewClient constructs a Client and validates connectivity via a health
// check. The Qdrant Go SDK creates lightweight gRPC connections, so the
// immediate health check fails fast when the service is unreachable.
func NewClient(cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to initialize client: %w", err)
	}

	c := &Client{
		api:     api,
		cfg:     cfg,
		log:     log,
		started: true,
	}

	if err := c.healthCheck(); err != nil {
		return nil, fmt.Errorf("qdrant: health check failed: %w", err)
	}

	if log != nil {
		log.Info("qdrant client connected", nil, map[string]interface{}{
			"endpoint": cfg.Endpoint,
			"port":     port,
		})
	}
	return c, nil
}

// healthCheck verifies the availability of the Qdrant service by calling
// the healthz endpoint through the SDK. Lightweight and fast, suitable
// for startup and readiness probes.
func (c *Client) healthCheck() error {
	if !c.started || c.api == nil {
		return fmt.Errorf("client not started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return err
	}

	if c.log != nil {
		c.log.Debug("qdrant health check passed", nil, map[string]interface{}{
			"title":   resp.Title,
			"version": resp.Version,
		})
	}
	return nil
}

// Backend returns the underlying SDK client as the narrow Backend
// interface the Service consumes.
func (c *Client) Backend() Backend {
	return c.api
}

// API returns the underlying Qdrant SDK client for direct access to
// low-level operations.
func (c *Client) API() *qdrant.Client {
	return c.api
}

// Close gracefully shuts down the Qdrant client.
func (c *Client) Close() error {
	if !c.started || c.api == nil {
		return nil
	}
	return c.api.Close()
}
