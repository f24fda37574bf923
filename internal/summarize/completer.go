// Package summarize generates natural-language summaries of files through an
// injected text-generation collaborator.
package summarize

import "context"

// CompletionRequest carries one text-generation request to the collaborator.
type CompletionRequest struct {
	Prompt            string
	SystemInstruction string
	Temperature       float64
	MaxTokens         int
}

// Completer produces a completion for a single prompt. Implementations are
// synchronous; the caller blocks on every request.
type Completer interface {
	Complete(requestContext context.Context, request CompletionRequest) (string, error)
}
