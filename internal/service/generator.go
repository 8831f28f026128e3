package service

import "context"

// GenerationOptions are the sampling parameters a caller may tune per call.
// JSONOutput asks the provider for its constrained JSON output mode when it
// has one; providers without one just get a stricter prompt.
type GenerationOptions struct {
	Temperature     float32
	MaxOutputTokens int32
	JSONOutput      bool
}

// TextGenerator is the text-generation capability shared by the parser,
// ranker, synthesizer and cover letter flows. Implementations return the raw
// generated text; callers own all parsing and fallback behavior.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts GenerationOptions) (string, error)
}
