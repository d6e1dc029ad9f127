package model

import "time"

// ================ Config ================

// TimeoutConfig bounds every external port call. Values are seconds.
type TimeoutConfig struct {
	Classifier int `envconfig:"CLASSIFIER_TIMEOUT_SECONDS" default:"5"`
	Retriever  int `envconfig:"RETRIEVER_TIMEOUT_SECONDS" default:"3"`
	Generator  int `envconfig:"GENERATOR_TIMEOUT_SECONDS" default:"8"`
	Tool       int `envconfig:"TOOL_TIMEOUT_SECONDS" default:"5"`
}

func (t TimeoutConfig) ClassifierTimeout() time.Duration {
	return time.Duration(t.Classifier) * time.Second
}

func (t TimeoutConfig) RetrieverTimeout() time.Duration {
	return time.Duration(t.Retriever) * time.Second
}

func (t TimeoutConfig) GeneratorTimeout() time.Duration {
	return time.Duration(t.Generator) * time.Second
}

func (t TimeoutConfig) ToolTimeout() time.Duration {
	return time.Duration(t.Tool) * time.Second
}

// OrchestratorConfig is the configuration surface recognised by the core.
type OrchestratorConfig struct {
	MaxSlotRetries   int `envconfig:"MAX_SLOT_RETRIES" default:"3"`
	RetrievalK       int `envconfig:"RETRIEVAL_K" default:"3"`
	HistoryWindow    int `envconfig:"HISTORY_WINDOW_TURNS" default:"6"`
	TransientRetries int `envconfig:"PORT_TRANSIENT_RETRIES" default:"2"`
	RetryBackoffMS   int `envconfig:"PORT_RETRY_BACKOFF_MS" default:"200"`
	Timeouts         TimeoutConfig
}

// RetryBackoff returns the base backoff between transient retries.
func (c OrchestratorConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}

// ClassifierModelConfig configures the intent classification model.
type ClassifierModelConfig struct {
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"16"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.0"`
}

// ResponseModelConfig configures the response generation model.
type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.7"`
}

// EmbeddingModelConfig configures the embedding model behind the retriever.
type EmbeddingModelConfig struct {
	Model string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-004"`
}

// BusinessConfig customises reply wording and the RAG system prompt.
type BusinessConfig struct {
	Name    string `envconfig:"PROMPT_BUSINESS_NAME" default:"AutoStream"`
	Tagline string `envconfig:"PROMPT_BUSINESS_TAGLINE" default:"AI-powered video editing platform for content creators"`
}

// SessionConfig configures session storage.
type SessionConfig struct {
	// TTL applies only to the Redis-backed store; zero disables expiry.
	TTL string `envconfig:"SESSION_TTL" default:"0"`
}
