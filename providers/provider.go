package providers

import "context"

// CompletionRequest beschreibt einen einzelnen Aufruf an ein Sprachmodell.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int64
}

// Completer ist das Interface, das jeder Text-Provider (z.B. OpenAI, Anthropic) implementieren muss.
type Completer interface {
	// Complete schickt den Prompt genau einmal ab und liefert den erzeugten Text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Name gibt den eindeutigen Namen des Providers zurück (z.B. "openai").
	Name() string
}
