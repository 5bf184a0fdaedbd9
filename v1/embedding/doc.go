// Package embedding computes the text and image vectors stored alongside
// products in the vector database.
//
// The package exposes a single public entrypoint, Client, which hides all
// low-level HTTP details, endpoint paths and authentication:
//
//	client, err := embedding.NewClient(cfg)
//	vectors, err := client.Embed(ctx, "red sneakers", "leather boots")
//	imageVecs, err := client.EmbedImages(ctx, imgB64a, imgB64b)
//
// Text embeddings go through the OpenAI-compatible /v1/embeddings endpoint in
// a single batched request. Image embeddings take base64-encoded image data
// and hit /v1/image-embeddings one image at a time; the client fans a batch
// out with a bounded number of concurrent requests and preserves input order.
//
// # Configuration
//
// Configuration is sourced from environment variables via NewConfig:
//
//   - EMBEDDING_ENDPOINT (required): base URL of the inference service.
//   - EMBEDDING_TEXT_MODEL (required): model for text embeddings.
//   - EMBEDDING_IMAGE_MODEL: model for image embeddings.
//   - EMBEDDING_SERVICE_TOKEN: bearer token, sent when set.
//   - EMBEDDING_HTTP_TIMEOUT_SECONDS: request timeout (default 30).
//   - EMBEDDING_MAX_PARALLEL: concurrent image requests (default 4).
//
// # Dependency Injection (Fx)
//
// embedding.FXModule supplies *Config and *Client and registers a shutdown
// hook that releases HTTP resources.
package embedding
