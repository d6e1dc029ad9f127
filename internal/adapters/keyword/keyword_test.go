package keyword

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autostream-agent/server/internal/agent/model"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		msg    string
		want   model.IntentLabel
		wantOK bool
	}{
		{"Hi", model.IntentGreeting, true},
		{"hello there", model.IntentGreeting, true},
		{"how much is the pro plan?", model.IntentInquiry, true},
		{"tell me about your refund policy", model.IntentInquiry, true},
		{"I want to sign up", model.IntentHighIntent, true},
		{"ready to subscribe", model.IntentHighIntent, true},

		// buying signal outranks the price question
		{"how much is it? I want to buy", model.IntentHighIntent, true},

		// greeting words inside a long message are not a greeting
		{
			"hi, my channel has been growing and the editing workload is becoming a serious problem for me lately",
			model.IntentUnknown, false,
		},

		{"asdfghjkl", model.IntentUnknown, false},
	}
	for _, tc := range cases {
		got, ok := Match(tc.msg)
		assert.Equal(t, tc.want, got, "msg %q", tc.msg)
		assert.Equal(t, tc.wantOK, ok, "msg %q", tc.msg)
	}
}

func TestClassifierFallsBackToUnknown(t *testing.T) {
	var c Classifier

	label, err := c.Classify(context.Background(), "???", nil)
	require.NoError(t, err)
	assert.Equal(t, model.IntentUnknown, label)
}
