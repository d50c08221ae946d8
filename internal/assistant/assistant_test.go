package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/seenimoa/newspulse/internal/llm"
	"github.com/seenimoa/newspulse/pkg/models"
)

// mockProvider lets tests script provider behavior.
type mockProvider struct {
	chatFn   func(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error)
	lastMsgs []llm.Message
	lastOpts *llm.ChatOptions
}

var _ llm.LLMProvider = (*mockProvider)(nil)

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error) {
	m.lastMsgs = messages
	m.lastOpts = opts
	return m.chatFn(ctx, messages, opts)
}

func (m *mockProvider) ChatStream(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (<-chan llm.StreamChunk, error) {
	ch := make(chan llm.StreamChunk)
	close(ch)
	return ch, nil
}

func (m *mockProvider) Models() []string            { return []string{"mock-1"} }
func (m *mockProvider) Ping(_ context.Context) error { return nil }

func okProvider(reply string) *mockProvider {
	return &mockProvider{
		chatFn: func(_ context.Context, _ []llm.Message, _ *llm.ChatOptions) (*llm.Response, error) {
			return &llm.Response{Content: reply, FinishReason: llm.FinishStop}, nil
		},
	}
}

func TestRespondSuccess(t *testing.T) {
	p := okProvider("Sentiment is computed from headline wording.")
	a := New(p)

	got := a.Respond(context.Background(), "How does sentiment analysis work?")
	if got != "Sentiment is computed from headline wording." {
		t.Fatalf("Respond: got %q", got)
	}

	if len(p.lastMsgs) != 1 || p.lastMsgs[0].Role != llm.RoleUser {
		t.Fatalf("expected a single user message, got %+v", p.lastMsgs)
	}
	prompt := p.lastMsgs[0].Content
	if !strings.Contains(prompt, "How does sentiment analysis work?") {
		t.Error("prompt should embed the question")
	}
	if !strings.Contains(prompt, "helpful news assistant") {
		t.Error("prompt should carry the assistant framing")
	}
	if !strings.Contains(prompt, "User Question:") {
		t.Error("prompt should label the question")
	}
}

func TestRespondSendsSafetySettings(t *testing.T) {
	p := okProvider("ok")
	a := New(p, WithModel("gemini-2.0-flash"), WithTemperature(0.7), WithMaxTokens(1024))

	a.Respond(context.Background(), "hello")

	if p.lastOpts == nil {
		t.Fatal("options not forwarded")
	}
	if len(p.lastOpts.SafetySettings) != 4 {
		t.Fatalf("expected 4 safety settings, got %d", len(p.lastOpts.SafetySettings))
	}
	for _, s := range p.lastOpts.SafetySettings {
		if s.Threshold != llm.ThresholdBlockNone {
			t.Errorf("category %s: threshold %q", s.Category, s.Threshold)
		}
	}
	if p.lastOpts.Model != "gemini-2.0-flash" || p.lastOpts.Temperature != 0.7 || p.lastOpts.MaxTokens != 1024 {
		t.Fatalf("options not applied: %+v", p.lastOpts)
	}
}

func TestRespondProviderError(t *testing.T) {
	p := &mockProvider{
		chatFn: func(_ context.Context, _ []llm.Message, _ *llm.ChatOptions) (*llm.Response, error) {
			return nil, errors.New("network down")
		},
	}
	a := New(p)

	got := a.Respond(context.Background(), "anything")
	want := "I apologize, but I'm having trouble processing your request at the moment. Please try again."
	if got != want {
		t.Fatalf("error fallback: got %q, want %q", got, want)
	}
}

func TestRespondEmptyContent(t *testing.T) {
	p := okProvider("   \n  ")
	a := New(p)

	got := a.Respond(context.Background(), "anything")
	want := "I apologize, but I couldn't generate a proper response. Please try rephrasing your question."
	if got != want {
		t.Fatalf("empty fallback: got %q, want %q", got, want)
	}
}

func TestRespondNilProvider(t *testing.T) {
	a := New(nil)
	if a.Ready() {
		t.Fatal("Ready() should be false without a provider")
	}

	got := a.Respond(context.Background(), "anything")
	want := "I apologize, but I'm having trouble processing your request at the moment. Please try again."
	if got != want {
		t.Fatalf("nil provider fallback: got %q, want %q", got, want)
	}
}

func TestRespondTrimsWhitespace(t *testing.T) {
	p := okProvider("\n  a tidy answer  \n")
	a := New(p)

	if got := a.Respond(context.Background(), "q"); got != "a tidy answer" {
		t.Fatalf("got %q", got)
	}
}

func TestRespondWithHistory(t *testing.T) {
	p := okProvider("Glad it helped!")
	a := New(p)

	history := []models.ChatTurn{
		{Role: "user", Text: "What does compound score mean?"},
		{Role: "assistant", Text: "It is a normalized sentiment value."},
	}
	got := a.RespondWithHistory(context.Background(), history, "Thanks, that helps")
	if got != "Glad it helped!" {
		t.Fatalf("got %q", got)
	}

	// system + 2 history turns + new question
	if len(p.lastMsgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(p.lastMsgs))
	}
	if p.lastMsgs[0].Role != llm.RoleSystem {
		t.Error("first message should be the system prompt")
	}
	if p.lastMsgs[1].Role != llm.RoleUser || p.lastMsgs[2].Role != llm.RoleAssistant {
		t.Errorf("history roles wrong: %+v", p.lastMsgs[1:3])
	}
	if p.lastMsgs[3].Content != "Thanks, that helps" {
		t.Errorf("final message: got %q", p.lastMsgs[3].Content)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Is tech news positive today?")

	for _, want := range []string{
		"You are a helpful news assistant",
		"User Question: Is tech news positive today?",
		"1. Directly addresses the user's question",
		"2. Maintains a professional and engaging tone",
		"3. Is concise and clear",
		"4. If the question is about sentiment analysis, explain how it works",
		"Your response:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
