package ports

import "context"

// ChatMessage is one turn of the chat-completion request body spec §6
// specifies: {role, content}.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatRequest is the generic HTTP-style chat request spec §6 describes:
// {model, messages, max_tokens, temperature}.
type ChatRequest struct {
	Model       string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// ChatResponse is a single text completion plus whatever the provider
// reports about its identity, for logging/telemetry only.
type ChatResponse struct {
	Content string
	Model   string
}

// LLMClient is the external text service contract of spec §6. Any
// HTTP-style chat endpoint accepting {model, messages, max_tokens,
// temperature} and returning one completion satisfies it.
type LLMClient interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
