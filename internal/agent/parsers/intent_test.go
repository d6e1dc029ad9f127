package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autostream-agent/server/internal/agent/model"
)

func TestNormalizeIntentLabel(t *testing.T) {
	cases := []struct {
		raw  string
		want model.IntentLabel
	}{
		{"greeting", model.IntentGreeting},
		{"inquiry", model.IntentInquiry},
		{"high_intent", model.IntentHighIntent},
		{"unknown", model.IntentUnknown},

		// noisy model output
		{"  Greeting  ", model.IntentGreeting},
		{`"inquiry"`, model.IntentInquiry},
		{"'high_intent'.", model.IntentHighIntent},
		{"HIGH-INTENT", model.IntentHighIntent},
		{"greeting because the user said hi", model.IntentGreeting},
		{"inquiry.\nThe user asks about pricing.", model.IntentInquiry},
		{"`greeting`", model.IntentGreeting},

		// unresolvable
		{"", model.IntentUnknown},
		{"purchase", model.IntentUnknown},
		{"I cannot classify this message", model.IntentUnknown},
		{strings.Repeat("x", 500), model.IntentUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeIntentLabel(tc.raw), "raw %q", tc.raw)
	}
}
