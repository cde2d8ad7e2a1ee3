package pipeline

import "errors"

// Failure taxonomy. Per-video fetch problems degrade to an empty summary and
// never surface here; everything below aborts the whole request.
var (
	// ErrNoVideoIDs means no recognizable video ID could be extracted from
	// any submitted URL. Client error, not a processing failure.
	ErrNoVideoIDs = errors.New("no video IDs could be extracted from the submitted URLs")

	// ErrSummarization wraps an LLM or chunking error while reducing one
	// video's transcript.
	ErrSummarization = errors.New("transcript summarization failed")

	// ErrImageGeneration wraps an image-provider error.
	ErrImageGeneration = errors.New("image generation failed")

	// ErrSynthesis wraps an LLM error or an unparseable article response.
	// Nothing is persisted when synthesis fails.
	ErrSynthesis = errors.New("article synthesis failed")
)
