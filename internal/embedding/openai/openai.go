// Package openai provides an embedder backed by an OpenAI-compatible
// embeddings endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	goopenai "github.com/sashabaranov/go-openai"

	"canrag/internal/config"
)

// Embedder calls a remote embeddings API. The vector dimension is learned
// from the first response.
type Embedder struct {
	client    *goopenai.Client
	model     string
	dimension int
}

// NewEmbedder builds an embedder from configuration. The API key is read
// from the environment variable named in the config.
func NewEmbedder(cfg config.OpenAIEmbedderConfig) (*Embedder, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", cfg.APIKeyEnv)
	}
	clientCfg := goopenai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Embedder{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

func (e *Embedder) Name() string { return "openai" }

// Prepare is a no-op for remote embedders: no vocabulary to build.
func (e *Embedder) Prepare(_ []string) error { return nil }

// Dimension returns the vector size, or 0 before the first Embed call.
func (e *Embedder) Dimension() int { return e.dimension }

func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: goopenai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embeddings response contains no data")
	}
	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}
	if e.dimension == 0 {
		e.dimension = len(vec)
	}
	return vec, nil
}
