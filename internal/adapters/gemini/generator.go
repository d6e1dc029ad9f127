package gemini

import (
	"context"
	"fmt"

	"github.com/autostream-agent/server/internal/agent/model"
	errx "github.com/autostream-agent/server/internal/core/error"
	"google.golang.org/genai"
)

// Generator produces the natural-language reply for inquiry turns.
type Generator struct {
	client *genai.Client
	cfg    model.ResponseModelConfig
}

func NewGenerator(client *genai.Client, cfg model.ResponseModelConfig) *Generator {
	return &Generator{client: client, cfg: cfg}
}

func (g *Generator) Generate(ctx context.Context, req model.GenerateRequest) (string, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		if turn.Text == "" {
			continue
		}
		switch turn.Role {
		case model.RoleUser:
			contents = append(contents, genai.NewContentFromText(turn.Text, genai.RoleUser))
		case model.RoleAgent:
			contents = append(contents, genai.NewContentFromText(turn.Text, genai.RoleModel))
		}
	}
	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(g.cfg.Temperature),
		MaxOutputTokens:   int32(g.cfg.MaxTokens),
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", errx.ErrGeneration, err)
	}
	return resp.Text(), nil
}

var _ model.Generator = (*Generator)(nil)
