package usecase

import (
	"context"

	"github.com/fadilmartias/resume-generator/internal/service"
)

// fakeGenerator returns the same reply (or error) for every call and counts
// invocations.
type fakeGenerator struct {
	reply string
	err   error

	calls   int
	prompts []string
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string, _ service.GenerationOptions) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

// scriptedGenerator pops one reply per call, for flows that make several
// different generation calls.
type scriptedGenerator struct {
	replies []string
	calls   int
}

func (s *scriptedGenerator) GenerateText(_ context.Context, _ string, _ service.GenerationOptions) (string, error) {
	s.calls++
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

// fakeRenderer returns canned PDF bytes or a canned error.
type fakeRenderer struct {
	pdf   []byte
	err   error
	calls int
}

func (f *fakeRenderer) RenderHTMLToPDF(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	return f.pdf, f.err
}
