package parsers

import (
	"strings"

	"github.com/autostream-agent/server/internal/agent/model"
)

// maxLabelLen bounds how much of a misbehaving model's output we inspect.
const maxLabelLen = 64

// NormalizeIntentLabel maps raw classifier output to one of the known intent
// labels. The classifier is a noisy external service: output may be quoted,
// capitalised, hyphenated, or wrapped in prose. Anything that cannot be
// resolved becomes unknown; this function never fails.
func NormalizeIntentLabel(raw string) model.IntentLabel {
	s := strings.TrimSpace(raw)
	if len(s) > maxLabelLen {
		s = s[:maxLabelLen]
	}
	s = strings.ToLower(s)
	s = strings.Trim(s, "\"'`*.:")

	// take the first token when the model answered in prose
	if i := strings.IndexAny(s, " \t\n"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.Trim(s, "\"'`*.:")

	if label := model.IntentLabel(s); model.KnownIntent(label) {
		return label
	}
	return model.IntentUnknown
}
