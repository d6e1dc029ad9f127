package gemini

import (
	"context"
	"fmt"

	"github.com/autostream-agent/server/internal/agent/model"
	"google.golang.org/genai"
)

// Embedder turns knowledge-base passages and queries into vectors for the
// retriever index.
type Embedder struct {
	client *genai.Client
	cfg    model.EmbeddingModelConfig
}

func NewEmbedder(client *genai.Client, cfg model.EmbeddingModelConfig) *Embedder {
	return &Embedder{client: client, cfg: cfg}
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.cfg.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed content: got %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}
