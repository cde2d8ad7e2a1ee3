package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSummarize_EmptyTranscript(t *testing.T) {
	llm := echoLLM()
	s := NewSummarizer(llm, "test-model", testLogger())

	got, err := s.Summarize(context.Background(), "")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "" {
		t.Errorf("Summarize(\"\") = %q, want empty", got)
	}
	if len(llm.prompts) != 0 {
		t.Errorf("model called %d times for empty transcript", len(llm.prompts))
	}
}

func TestSummarize_MapThenCombine(t *testing.T) {
	llm := echoLLM()
	s := NewSummarizer(llm, "test-model", testLogger())
	s.chunkSize = 50
	s.chunkOverlap = 5

	transcript := strings.Repeat("alpha ", 30)
	got, err := s.Summarize(context.Background(), transcript)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	// transcript spans several chunks, so there must be one map call per
	// chunk plus a final combine call.
	if len(llm.prompts) < 3 {
		t.Fatalf("model called %d times, want map calls plus combine", len(llm.prompts))
	}
	last := llm.prompts[len(llm.prompts)-1]
	if !strings.Contains(last, "intermediate summaries") {
		t.Error("final call is not the combine prompt")
	}
	// The combine step receives chunk-summaries, not the raw transcript.
	if !strings.Contains(last, "alpha") {
		t.Error("combine prompt lost chunk content")
	}
	if !strings.Contains(got, "alpha") {
		t.Error("summary lost transcript content")
	}
}

func TestSummarize_ModelError(t *testing.T) {
	boom := errors.New("model unavailable")
	llm := &scriptedLLM{complete: func(string) (string, error) { return "", boom }}
	s := NewSummarizer(llm, "test-model", testLogger())

	_, err := s.Summarize(context.Background(), "some transcript text")
	if !errors.Is(err, ErrSummarization) {
		t.Errorf("error = %v, want ErrSummarization", err)
	}
}
