package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/autostream-agent/server/internal/agent/model"
)

//go:embed template/classifier_prompt.txt
var classifierPrompt string

//go:embed template/response_prompt.txt
var responsePrompt string

// RenderClassifier renders the intent classification prompt.
// Known tokens are replaced individually so literal braces elsewhere in the
// template never interfere with rendering.
func RenderClassifier(business model.BusinessConfig, conversationContext, message string) string {
	return strings.NewReplacer(
		"{business_name}", business.Name,
		"{conversation_context}", conversationContext,
		"{message}", message,
	).Replace(classifierPrompt)
}

// RenderResponseSystem renders the RAG system prompt with retrieved passages
// in the order the retriever returned them.
func RenderResponseSystem(business model.BusinessConfig, passages []model.Passage) string {
	var ctx strings.Builder
	if len(passages) == 0 {
		ctx.WriteString("(no relevant context found)")
	}
	for i, p := range passages {
		if i > 0 {
			ctx.WriteString("\n\n")
		}
		fmt.Fprintf(&ctx, "[Context %d]\n%s", i+1, p.Text)
	}

	return strings.NewReplacer(
		"{business_name}", business.Name,
		"{business_tagline}", business.Tagline,
		"{retrieved_context}", ctx.String(),
	).Replace(responsePrompt)
}
