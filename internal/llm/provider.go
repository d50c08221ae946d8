// Package llm provides a unified interface for the LLM providers
// (Gemini, OpenAI) behind the chat assistant, with streaming support.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Provider names for configuration.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Common errors returned by LLM providers.
var (
	ErrNoAPIKey      = errors.New("llm: API key not configured")
	ErrRateLimit     = errors.New("llm: rate limit exceeded")
	ErrContextLength = errors.New("llm: context length exceeded")
	ErrProviderDown  = errors.New("llm: provider unavailable")
	ErrInvalidModel  = errors.New("llm: invalid model")
)

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// FinishReason indicates why the model stopped generating.
type FinishReason string

const (
	FinishStop   FinishReason = "stop"
	FinishLength FinishReason = "length"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Response represents a complete response from the LLM.
type Response struct {
	Content      string        `json:"content"`
	FinishReason FinishReason  `json:"finish_reason"`
	Usage        Usage         `json:"usage"`
	Model        string        `json:"model"`
	Provider     string        `json:"provider"`
	Latency      time.Duration `json:"latency"`
}

// Usage tracks token consumption for a request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// StreamChunk represents a single chunk in a streaming response.
type StreamChunk struct {
	Content      string       `json:"content,omitempty"`
	FinishReason FinishReason `json:"finish_reason,omitempty"`
	Done         bool         `json:"done"`
	Err          error        `json:"-"`
}

// SafetySetting adjusts one of Gemini's content filter categories.
// Providers without configurable filters ignore these.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// Gemini harm categories with adjustable thresholds.
const (
	CategoryHarassment       = "HARM_CATEGORY_HARASSMENT"
	CategoryHateSpeech       = "HARM_CATEGORY_HATE_SPEECH"
	CategorySexuallyExplicit = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	CategoryDangerousContent = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// ThresholdBlockNone disables blocking for a category.
const ThresholdBlockNone = "BLOCK_NONE"

// BlockNoneSafetySettings returns settings that disable all four
// adjustable content filters.
func BlockNoneSafetySettings() []SafetySetting {
	return []SafetySetting{
		{Category: CategoryHarassment, Threshold: ThresholdBlockNone},
		{Category: CategoryHateSpeech, Threshold: ThresholdBlockNone},
		{Category: CategorySexuallyExplicit, Threshold: ThresholdBlockNone},
		{Category: CategoryDangerousContent, Threshold: ThresholdBlockNone},
	}
}

// ChatOptions configures a single chat request.
type ChatOptions struct {
	Model          string          `json:"model,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	TopP           float64         `json:"top_p,omitempty"`
	Stop           []string        `json:"stop,omitempty"`
	SafetySettings []SafetySetting `json:"safety_settings,omitempty"`
}

// LLMProvider is the interface that all LLM backends must implement.
type LLMProvider interface {
	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string

	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error)

	// ChatStream sends a conversation and returns a channel of streaming chunks.
	// The channel is closed when the response is complete.
	ChatStream(ctx context.Context, messages []Message, opts *ChatOptions) (<-chan StreamChunk, error)

	// Models returns the list of available models for this provider.
	Models() []string

	// Ping checks if the provider is reachable and the API key is valid.
	Ping(ctx context.Context) error
}

// NewMessage creates a message with the given role and content.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// SystemMessage creates a system prompt message.
func SystemMessage(content string) Message {
	return NewMessage(RoleSystem, content)
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// String returns a human-readable summary of the response.
func (r *Response) String() string {
	truncated := r.Content
	if len(truncated) > 100 {
		truncated = truncated[:100] + "..."
	}
	return fmt.Sprintf("[%s/%s] %q, %d tokens, %v",
		r.Provider, r.Model, truncated, r.Usage.TotalTokens, r.Latency.Round(time.Millisecond))
}
