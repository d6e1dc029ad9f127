package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the dialogue state machine position for one thread.
type SessionState string

const (
	StateIdle             SessionState = "IDLE"
	StateAwaitingName     SessionState = "AWAITING_NAME"
	StateAwaitingEmail    SessionState = "AWAITING_EMAIL"
	StateAwaitingPlatform SessionState = "AWAITING_PLATFORM"
	StateComplete         SessionState = "COMPLETE"
)

// AwaitingSlot reports whether the state is in the middle of a lead episode,
// i.e. the next user message is a slot value rather than a classifiable intent.
func (s SessionState) AwaitingSlot() bool {
	switch s {
	case StateAwaitingName, StateAwaitingEmail, StateAwaitingPlatform:
		return true
	}
	return false
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Turn is one message of the conversation history. User turns record the
// effective intent resolved for that message.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Intent    string    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Lead is the record collected by slot-filling and submitted to the backend action.
type Lead struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Platform string `json:"platform"`
}

// Complete reports whether every required field has been collected.
func (l Lead) Complete() bool {
	return l.Name != "" && l.Email != "" && l.Platform != ""
}

// Session holds the full persistent state of one conversation thread.
// History is append-only and never truncated; windowing for prompt
// construction happens on the read side.
type Session struct {
	ThreadID   string       `json:"thread_id"`
	History    []Turn       `json:"history"`
	State      SessionState `json:"state"`
	Lead       Lead         `json:"lead"`
	RetryCount int          `json:"retry_count"`
}

// NewSession returns a fresh session at the resting state.
func NewSession(threadID string) *Session {
	return &Session{
		ThreadID: threadID,
		History:  []Turn{},
		State:    StateIdle,
	}
}

// Clone returns a deep copy, used by stores to stage a turn's mutations so a
// failed turn never leaves the committed session partially updated.
func (s *Session) Clone() *Session {
	cp := *s
	cp.History = make([]Turn, len(s.History))
	copy(cp.History, s.History)
	return &cp
}

// AppendTurn records a message in the history.
func (s *Session) AppendTurn(role Role, text, intent string) {
	s.History = append(s.History, Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Intent:    intent,
		Timestamp: time.Now().UTC(),
	})
}

// ResetEpisode clears any partially collected lead and returns the session to
// the resting state. History is untouched.
func (s *Session) ResetEpisode() {
	s.Lead = Lead{}
	s.RetryCount = 0
	s.State = StateIdle
}
