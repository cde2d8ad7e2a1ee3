package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vidjalsa/vidjalsa/internal/llm"
)

// ArticlePayload is the structured result of article synthesis. All four
// fields must be populated and Paragraphs must be non-empty.
type ArticlePayload struct {
	Title      string   `json:"Title"`
	Question   string   `json:"Question"`
	Author     string   `json:"Author"`
	Paragraphs []string `json:"Paragraphs"`
}

// Synthesizer turns the joined per-video summaries into an ArticlePayload
// with a single LLM call. The response is parsed strictly as JSON first; if
// that fails, a tolerant line-oriented parser handles near-JSON output.
type Synthesizer struct {
	llm    llm.Client
	model  string
	logger *slog.Logger
}

func NewSynthesizer(client llm.Client, model string, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{llm: client, model: model, logger: logger}
}

func (s *Synthesizer) Synthesize(ctx context.Context, combinedSummary string) (*ArticlePayload, error) {
	raw, err := s.llm.Complete(ctx, s.model, articlePrompt(combinedSummary))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	payload, err := ParseArticleResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	return payload, nil
}

// ParseArticleResponse extracts an ArticlePayload from a raw model response.
// Strict JSON is tried first (after stripping markdown code fences); on
// failure a line-oriented parser that tolerates missing quotes, trailing
// commas, and reordered fields takes over. Either way the result must carry
// all four fields with at least one paragraph.
func ParseArticleResponse(raw string) (*ArticlePayload, error) {
	text := stripFences(strings.TrimSpace(raw))

	var payload ArticlePayload
	if err := json.Unmarshal([]byte(text), &payload); err == nil {
		if err := validatePayload(&payload); err == nil {
			return &payload, nil
		}
	}

	loose, err := parseLooseArticle(text)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(loose); err != nil {
		return nil, err
	}
	return loose, nil
}

func validatePayload(p *ArticlePayload) error {
	switch {
	case p.Title == "":
		return fmt.Errorf("missing Title")
	case p.Question == "":
		return fmt.Errorf("missing Question")
	case p.Author == "":
		return fmt.Errorf("missing Author")
	case len(p.Paragraphs) == 0:
		return fmt.Errorf("empty Paragraphs")
	}
	return nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, leaving anything else untouched.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

const decorationCutset = "\"{}[], "

// parseLooseArticle reads near-JSON text line by line. A line containing an
// opening bracket starts an array field named by the text before its first
// colon; subsequent lines are collected as stripped elements until a line
// with a closing bracket. Any other line with a colon is a scalar field,
// split on the FIRST colon only so values may contain colons themselves.
// Field order is not assumed.
func parseLooseArticle(text string) (*ArticlePayload, error) {
	payload := &ArticlePayload{}
	inArray := false
	arrayKey := ""
	var arrayValues []string

	assign := func(key, value string) {
		switch key {
		case "Title":
			payload.Title = value
		case "Question":
			payload.Question = value
		case "Author":
			payload.Author = value
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if !inArray && strings.Contains(line, "[") {
			colon := strings.Index(line, ":")
			if colon < 0 {
				continue
			}
			arrayKey = strings.Trim(strings.TrimSpace(line[:colon]), "\"{} ")
			inArray = true
			arrayValues = nil
			continue
		}
		if inArray && strings.Contains(line, "]") {
			inArray = false
			if arrayKey == "Paragraphs" {
				payload.Paragraphs = arrayValues
			}
			continue
		}
		if inArray {
			if v := strings.Trim(strings.TrimSpace(line), decorationCutset); v != "" {
				arrayValues = append(arrayValues, v)
			}
			continue
		}

		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		key := strings.Trim(strings.TrimSpace(line[:colon]), "\"{} ")
		value := strings.Trim(strings.TrimSpace(line[colon+1:]), decorationCutset)
		if key != "" && value != "" {
			assign(key, value)
		}
	}

	return payload, nil
}
