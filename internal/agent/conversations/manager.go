package conversations

import (
	"strings"

	"github.com/autostream-agent/server/internal/agent/model"
)

// Windower selects the recent slice of a session's history used for prompt
// construction. Storage keeps the full history; only the read side is bounded.
type Windower struct {
	window int
}

func NewWindower(window int) *Windower {
	if window <= 0 {
		window = 6
	}
	return &Windower{window: window}
}

// Recent returns up to the last window turns as a fresh slice.
func (w *Windower) Recent(history []model.Turn) []model.Turn {
	return trimTail(history, w.window)
}

// RenderContext formats turns into the tagged block the prompt templates expect.
func RenderContext(turns []model.Turn) string {
	var b strings.Builder
	b.WriteString("<conversation_context>\n")
	for _, t := range turns {
		if t.Text == "" {
			continue
		}
		switch t.Role {
		case model.RoleUser:
			b.WriteString("UserMessage(" + t.Text + ")\n")
		case model.RoleAgent:
			b.WriteString("AssistantMessage(" + t.Text + ")\n")
		}
	}
	b.WriteString("</conversation_context>")
	return b.String()
}

// ====================== Helper function ======================
func trimTail(turns []model.Turn, maxTurns int) []model.Turn {
	if len(turns) <= maxTurns {
		result := make([]model.Turn, len(turns))
		copy(result, turns)
		return result
	}
	source := turns[len(turns)-maxTurns:]
	result := make([]model.Turn, len(source))
	copy(result, source)
	return result
}
