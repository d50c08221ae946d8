package assistant

import (
	"context"
	"strings"

	"github.com/seenimoa/newspulse/internal/llm"
	"github.com/seenimoa/newspulse/internal/logging"
	"github.com/seenimoa/newspulse/pkg/models"
)

// Fixed replies for degraded situations. Callers can rely on Respond
// never failing; these strings are the floor.
const (
	fallbackEmptyResponse = "I apologize, but I couldn't generate a proper response. Please try rephrasing your question."
	fallbackError         = "I apologize, but I'm having trouble processing your request at the moment. Please try again."
)

// Assistant answers user questions about news and sentiment.
type Assistant struct {
	provider llm.LLMProvider
	model    string
	temp     float64
	maxTok   int
	log      *logging.Logger
}

// Option configures the assistant.
type Option func(*Assistant)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(a *Assistant) { a.model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(a *Assistant) { a.temp = t }
}

// WithMaxTokens caps the response length.
func WithMaxTokens(n int) Option {
	return func(a *Assistant) { a.maxTok = n }
}

// New creates an assistant over the given provider. A nil provider is
// allowed: every question then gets the error fallback, which lets the
// server run without an LLM key.
func New(provider llm.LLMProvider, opts ...Option) *Assistant {
	a := &Assistant{
		provider: provider,
		log:      logging.New("assistant"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Respond answers a single question. It never returns an error: any
// provider failure maps to a fixed apology string.
func (a *Assistant) Respond(ctx context.Context, question string) string {
	if a.provider == nil {
		a.log.Warnf("no LLM provider configured, returning fallback")
		return fallbackError
	}

	resp, err := a.provider.Chat(ctx,
		[]llm.Message{llm.UserMessage(BuildPrompt(question))},
		a.chatOptions())
	if err != nil {
		a.log.Errorf("chat request failed: %v", err)
		return fallbackError
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		a.log.Errorf("empty response from %s", a.provider.Name())
		return fallbackEmptyResponse
	}
	return text
}

// RespondWithHistory answers a question with prior conversation turns
// as context. Used by the CLI and WebSocket chat. Like Respond, it
// never returns an error.
func (a *Assistant) RespondWithHistory(ctx context.Context, history []models.ChatTurn, question string) string {
	if a.provider == nil {
		a.log.Warnf("no LLM provider configured, returning fallback")
		return fallbackError
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.SystemMessage(historySystemPrompt))
	for _, turn := range history {
		switch turn.Role {
		case "assistant":
			messages = append(messages, llm.AssistantMessage(turn.Text))
		default:
			messages = append(messages, llm.UserMessage(turn.Text))
		}
	}
	messages = append(messages, llm.UserMessage(question))

	resp, err := a.provider.Chat(ctx, messages, a.chatOptions())
	if err != nil {
		a.log.Errorf("chat request failed: %v", err)
		return fallbackError
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		a.log.Errorf("empty response from %s", a.provider.Name())
		return fallbackEmptyResponse
	}
	return text
}

// Ready reports whether an LLM provider is configured.
func (a *Assistant) Ready() bool { return a.provider != nil }

func (a *Assistant) chatOptions() *llm.ChatOptions {
	return &llm.ChatOptions{
		Model:          a.model,
		Temperature:    a.temp,
		MaxTokens:      a.maxTok,
		SafetySettings: llm.BlockNoneSafetySettings(),
	}
}
