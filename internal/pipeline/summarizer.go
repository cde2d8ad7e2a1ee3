package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vidjalsa/vidjalsa/internal/llm"
)

// Summarizer reduces one video's transcript to prose via map-reduce: each
// chunk is summarized independently, then the chunk-summaries are combined
// into a single coherent summary.
type Summarizer struct {
	llm    llm.Client
	model  string
	logger *slog.Logger

	chunkSize    int
	chunkOverlap int
}

func NewSummarizer(client llm.Client, model string, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		llm:          client,
		model:        model,
		logger:       logger,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
	}
}

// Summarize returns one summary for the whole transcript blob. An empty
// transcript yields an empty summary without touching the model.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	chunks := ChunkText(transcript, s.chunkSize, s.chunkOverlap)
	if len(chunks) == 0 {
		return "", nil
	}

	chunkSummaries := make([]string, len(chunks))
	for i, chunk := range chunks {
		summary, err := s.llm.Complete(ctx, s.model, summarizePrompt(chunk))
		if err != nil {
			return "", fmt.Errorf("%w: chunk %d/%d: %v", ErrSummarization, i+1, len(chunks), err)
		}
		chunkSummaries[i] = summary
	}

	// A single chunk still goes through the combine step; it doubles as a
	// quality pass over the narrative.
	combined, err := s.llm.Complete(ctx, s.model, combinePrompt(strings.Join(chunkSummaries, "\n\n")))
	if err != nil {
		return "", fmt.Errorf("%w: combine: %v", ErrSummarization, err)
	}
	return combined, nil
}
