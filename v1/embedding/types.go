package embedding

import (
	"context"
	"fmt"
)

// Provider contract
type Provider interface {
	// EmbedText generates one embedding per input text.
	EmbedText(ctx context.Context, texts ...string) ([][]float32, error)

	// EmbedImages generates one embedding per base64-encoded image.
	EmbedImages(ctx context.Context, images ...string) ([][]float32, error)
}

// Error carries the failing operation alongside the underlying cause so
// callers can log a stable operation name without parsing messages.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("embedding: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
