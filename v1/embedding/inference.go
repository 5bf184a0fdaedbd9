package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

type InferenceProvider struct {
	baseURL      string
	serviceToken string
	textModel    string
	imageModel   string
	maxParallel  int
	httpClient   *http.Client
}

func newInferenceProvider(cfg *Config) (*InferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT")
	}

	// Remove trailing slash if user added it.
	base := strings.TrimRight(cfg.Endpoint, "/")

	parallel := cfg.MaxParallel
	if parallel <= 0 {
		parallel = 4
	}

	return &InferenceProvider{
		baseURL:      base,
		serviceToken: cfg.ServiceToken,
		textModel:    cfg.TextModel,
		imageModel:   cfg.ImageModel,
		maxParallel:  parallel,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

// EmbedText generates embeddings for the given texts using the
// OpenAI-compatible /v1/embeddings endpoint. The endpoint accepts the whole
// batch in one request and returns embeddings in input order.
func (p *InferenceProvider) EmbedText(ctx context.Context, texts ...string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, &Error{Op: "embed_text", Err: fmt.Errorf("no texts provided")}
	}

	reqBody := map[string]any{
		"model": p.textModel,
		"input": texts,
	}

	url := fmt.Sprintf("%s/v1/embeddings", p.baseURL)

	var parsed struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	if err := p.postJSON(ctx, url, reqBody, &parsed); err != nil {
		return nil, &Error{Op: "embed_text", Err: err}
	}

	if len(parsed.Data) != len(texts) {
		return nil, &Error{Op: "embed_text", Err: fmt.Errorf("expected %d embeddings, got %d", len(texts), len(parsed.Data))}
	}

	out := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = d.Embedding
	}

	return out, nil
}

// EmbedImages generates one embedding per base64-encoded image. The image
// endpoint only accepts one image per request, so the batch is fanned out
// with a bounded number of concurrent calls. Results keep input order.
func (p *InferenceProvider) EmbedImages(ctx context.Context, images ...string) ([][]float32, error) {
	if len(images) == 0 {
		return nil, &Error{Op: "embed_images", Err: fmt.Errorf("no images provided")}
	}
	if p.imageModel == "" {
		return nil, &Error{Op: "embed_images", Err: fmt.Errorf("missing EMBEDDING_IMAGE_MODEL")}
	}

	out := make([][]float32, len(images))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxParallel)

	for i, img := range images {
		g.Go(func() error {
			vec, err := p.embedOneImage(ctx, i, img)
			if err != nil {
				return err
			}
			out[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, &Error{Op: "embed_images", Err: err}
	}

	return out, nil
}

// embedOneImage posts a single base64-encoded image. Errors refer to the
// image by batch index, never by content.
func (p *InferenceProvider) embedOneImage(ctx context.Context, index int, imageB64 string) ([]float32, error) {
	reqBody := map[string]any{
		"model": p.imageModel,
		"image": imageB64,
	}

	url := fmt.Sprintf("%s/v1/image-embeddings", p.baseURL)

	var parsed struct {
		Embedding []float32 `json:"embedding"`
	}

	if err := p.postJSON(ctx, url, reqBody, &parsed); err != nil {
		return nil, fmt.Errorf("image %d: %w", index, err)
	}

	if len(parsed.Embedding) == 0 {
		return nil, fmt.Errorf("image %d: empty embedding", index)
	}

	return parsed.Embedding, nil
}
