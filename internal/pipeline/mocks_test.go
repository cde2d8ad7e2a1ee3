package pipeline

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/vidjalsa/vidjalsa/internal/youtube"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedLLM drives test behavior through closures and records every prompt
// it sees.
type scriptedLLM struct {
	mu       sync.Mutex
	prompts  []string
	complete func(prompt string) (string, error)
	image    func(prompt string) (string, error)
}

func (m *scriptedLLM) Complete(ctx context.Context, model, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.complete(prompt)
}

func (m *scriptedLLM) GenerateImage(ctx context.Context, model, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.image == nil {
		return "https://img.example/cover.png", nil
	}
	return m.image(prompt)
}

// echoLLM passes prompts straight through, so transcript markers survive the
// whole summarization chain and tests can assert on their placement.
func echoLLM() *scriptedLLM {
	return &scriptedLLM{complete: func(prompt string) (string, error) { return prompt, nil }}
}

type scriptedTranscripts struct {
	fetch func(ctx context.Context, videoID string) ([]youtube.Segment, error)
}

func (m *scriptedTranscripts) Fetch(ctx context.Context, videoID string) ([]youtube.Segment, error) {
	return m.fetch(ctx, videoID)
}

func segmentsOf(texts ...string) []youtube.Segment {
	segments := make([]youtube.Segment, len(texts))
	for i, text := range texts {
		segments[i] = youtube.Segment{Text: text, Start: float64(i), Duration: 1}
	}
	return segments
}
