package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, etc.)
// from the application layer.
type Client struct {
	provider Provider
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
// Application code should depend on *Client, not on Provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p}, nil
}

// NewClientWithProvider wires a custom provider. Used in tests.
func NewClientWithProvider(p Provider) *Client {
	return &Client{provider: p}
}

// Embed computes one embedding per input text.
func (c *Client) Embed(ctx context.Context, texts ...string) ([][]float32, error) {
	return c.provider.EmbedText(ctx, texts...)
}

// EmbedImages computes one embedding per base64-encoded image.
func (c *Client) EmbedImages(ctx context.Context, images ...string) ([][]float32, error) {
	return c.provider.EmbedImages(ctx, images...)
}

// Close releases any internal resources used by the provider.
// Currently this is a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
