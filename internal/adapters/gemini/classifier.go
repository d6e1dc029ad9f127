package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/autostream-agent/server/internal/adapters/keyword"
	"github.com/autostream-agent/server/internal/agent/conversations"
	"github.com/autostream-agent/server/internal/agent/model"
	"github.com/autostream-agent/server/internal/agent/prompts"
	errx "github.com/autostream-agent/server/internal/core/error"
	logx "github.com/autostream-agent/server/pkg/logger"
	"google.golang.org/genai"
)

// Classifier resolves intent with a keyword pre-pass and falls back to the
// model only for ambiguous messages. The returned label is raw; the
// orchestrator normalises it defensively.
type Classifier struct {
	client   *genai.Client
	cfg      model.ClassifierModelConfig
	business model.BusinessConfig
}

func NewClassifier(client *genai.Client, cfg model.ClassifierModelConfig, business model.BusinessConfig) *Classifier {
	return &Classifier{client: client, cfg: cfg, business: business}
}

func (c *Classifier) Classify(ctx context.Context, message string, recent []model.Turn) (model.IntentLabel, error) {
	if label, ok := keyword.Match(message); ok {
		return label, nil
	}

	prompt := prompts.RenderClassifier(c.business, conversations.RenderContext(recent), message)

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.cfg.Temperature),
		MaxOutputTokens: int32(c.cfg.MaxTokens),
	})
	if err != nil {
		return model.IntentUnknown, fmt.Errorf("%w: %w", errx.ErrClassification, err)
	}

	raw := strings.TrimSpace(resp.Text())
	logx.Debug().Str("label", raw).Msg("classifier model label")
	return model.IntentLabel(raw), nil
}

var _ model.Classifier = (*Classifier)(nil)
