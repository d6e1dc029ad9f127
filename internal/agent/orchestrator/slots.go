package orchestrator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/autostream-agent/server/internal/agent/model"
	errx "github.com/autostream-agent/server/internal/core/error"
)

// emailShape is a pragmatic shape check, not RFC 5322: one '@', a non-empty
// local part, and a dotted domain.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// knownPlatforms canonicalises the common creator platforms; anything else
// non-empty is accepted verbatim. Ordered so a message naming several
// platforms always resolves to the same one.
var knownPlatforms = []struct{ key, canonical string }{
	{"youtube", "YouTube"},
	{"instagram", "Instagram"},
	{"tiktok", "TikTok"},
	{"facebook", "Facebook"},
	{"twitter", "Twitter"},
	{"twitch", "Twitch"},
	{"linkedin", "LinkedIn"},
}

// slotName returns the slot a state is waiting for, for logs and metrics.
func slotName(state model.SessionState) string {
	switch state {
	case model.StateAwaitingName:
		return "name"
	case model.StateAwaitingEmail:
		return "email"
	case model.StateAwaitingPlatform:
		return "platform"
	}
	return ""
}

// extractSlot pulls the expected slot value out of a conversational message
// and validates it per the slot's rule. On failure nothing is written and the
// slot is re-prompted.
func extractSlot(state model.SessionState, message string) (string, error) {
	switch state {
	case model.StateAwaitingName:
		if v := extractName(message); v != "" {
			return v, nil
		}
	case model.StateAwaitingEmail:
		if v := extractEmail(message); v != "" {
			return v, nil
		}
	case model.StateAwaitingPlatform:
		if v := extractPlatform(message); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: no acceptable %s in message", errx.ErrValidation, slotName(state))
}

// Introduction phrases are matched case-insensitively on the original string;
// ToLower can change byte offsets for non-ASCII input.
var (
	namePhrase = regexp.MustCompile(`(?i)name is`)
	namePrefix = regexp.MustCompile(`^(?i:i'm|i am)\s+`)
)

// extractName handles "my name is X", "I'm X", "I am X", or a bare name.
func extractName(text string) string {
	trimmed := strings.TrimSpace(text)

	if loc := namePhrase.FindStringIndex(trimmed); loc != nil {
		return tidyName(trimmed[loc[1]:])
	}
	if loc := namePrefix.FindStringIndex(trimmed); loc != nil {
		return tidyName(trimmed[loc[1]:])
	}
	return tidyName(trimmed)
}

func tidyName(s string) string {
	return strings.Trim(strings.TrimSpace(s), ".!,")
}

// extractEmail returns the first token shaped like an email, or "" when the
// message contains none.
func extractEmail(text string) string {
	for _, word := range strings.Fields(text) {
		candidate := strings.Trim(word, ".,;:!?<>()\"'")
		if emailShape.MatchString(candidate) {
			return candidate
		}
	}
	return ""
}

// extractPlatform prefers a known platform mentioned anywhere in the message,
// otherwise accepts the trimmed message verbatim.
func extractPlatform(text string) string {
	lower := strings.ToLower(text)
	for _, p := range knownPlatforms {
		if strings.Contains(lower, p.key) {
			return p.canonical
		}
	}
	return strings.Trim(strings.TrimSpace(text), ".!,")
}
