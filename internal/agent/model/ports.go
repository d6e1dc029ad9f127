package model

import "context"

// IntentLabel classifies the purpose of a user message.
type IntentLabel string

const (
	IntentGreeting   IntentLabel = "greeting"
	IntentInquiry    IntentLabel = "inquiry"
	IntentHighIntent IntentLabel = "high_intent"
	IntentUnknown    IntentLabel = "unknown"
)

// KnownIntent reports whether the label is one of the values the transition
// table understands. Anything else is treated as unknown.
func KnownIntent(l IntentLabel) bool {
	switch l {
	case IntentGreeting, IntentInquiry, IntentHighIntent, IntentUnknown:
		return true
	}
	return false
}

// Classifier maps a message plus recent context to an intent label. The label
// must be treated as noisy: callers normalise anything unexpected to unknown.
type Classifier interface {
	Classify(ctx context.Context, message string, recent []Turn) (IntentLabel, error)
}

// Passage is one retrieved knowledge-base excerpt with its relevance score.
type Passage struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Retriever maps a query to an ordered list of relevant passages. An empty
// result is valid and triggers a fallback answer, not an error.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Passage, error)
}

// GenerateRequest bundles everything the generation engine needs for a reply.
type GenerateRequest struct {
	System  string
	History []Turn
	Message string
}

// Generator produces natural-language response text. Non-deterministic; may
// fail or time out, and its output is used verbatim.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// LeadCapture submits a completed lead record to the backend action.
type LeadCapture interface {
	Capture(ctx context.Context, lead Lead) error
}

// SessionRepository owns per-thread conversation state.
//
// GetOrCreate is idempotent and returns a staging copy the caller may mutate
// freely; Commit atomically replaces the stored state for that key. Lock
// serialises turns for a single thread while leaving distinct threads fully
// parallel; callers hold the lock across the whole read-modify-write.
type SessionRepository interface {
	GetOrCreate(ctx context.Context, threadID string) (*Session, error)
	Commit(ctx context.Context, threadID string, s *Session) error
	Lock(threadID string) (unlock func())
}
