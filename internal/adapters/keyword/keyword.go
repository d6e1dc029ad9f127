package keyword

import (
	"context"
	"strings"

	"github.com/autostream-agent/server/internal/agent/model"
)

// Signal phrases for the rule-based pre-pass. High intent is checked first:
// a message like "how much is it? I want to buy" is a buying signal.
var (
	highIntentKeywords = []string{
		"sign up", "want to try", "i want", "get started",
		"purchase", "buy", "subscribe", "interested in",
		"ready to", "let's go", "sounds good", "i'll take",
	}
	inquiryKeywords = []string{
		"how much", "price", "pricing", "cost", "plan", "feature",
		"what is", "tell me about", "do you", "can i", "support",
		"refund", "cancel", "trial",
	}
	greetingKeywords = []string{"hi", "hello", "hey", "good morning", "good afternoon"}
)

// Match classifies a message by keyword signals alone. ok is false when no
// signal fires and the caller should fall back to a model-based classifier.
func Match(message string) (model.IntentLabel, bool) {
	lower := strings.ToLower(message)

	for _, kw := range highIntentKeywords {
		if strings.Contains(lower, kw) {
			return model.IntentHighIntent, true
		}
	}
	for _, kw := range inquiryKeywords {
		if strings.Contains(lower, kw) {
			return model.IntentInquiry, true
		}
	}
	// greetings are short; a long message that happens to open with "hi" is
	// more likely an inquiry
	if len(strings.Fields(lower)) < 10 {
		for _, kw := range greetingKeywords {
			if strings.Contains(lower, kw) {
				return model.IntentGreeting, true
			}
		}
	}
	return model.IntentUnknown, false
}

// Classifier is the pure rule-based classifier port. It is the degraded-mode
// stand-in when no model-backed classifier is configured.
type Classifier struct{}

func (Classifier) Classify(_ context.Context, message string, _ []model.Turn) (model.IntentLabel, error) {
	if label, ok := Match(message); ok {
		return label, nil
	}
	return model.IntentUnknown, nil
}

var _ model.Classifier = Classifier{}
