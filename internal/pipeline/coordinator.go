package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vidjalsa/vidjalsa/internal/llm"
	"github.com/vidjalsa/vidjalsa/internal/youtube"
)

// summarySeparator marks per-video boundaries in the combined text so the
// synthesizer can tell one video's narrative from the next.
const summarySeparator = "\n\n\n\n"

// TranscriptProvider fetches the timestamped transcript of one video.
type TranscriptProvider interface {
	Fetch(ctx context.Context, videoID string) ([]youtube.Segment, error)
}

// Coordinator fans out one fetch+summarize task per video plus one image
// task, waits for all of them, and joins the summaries in input order.
type Coordinator struct {
	transcripts TranscriptProvider
	summarizer  *Summarizer
	images      llm.Client
	imageModel  string
	taskTimeout time.Duration
	logger      *slog.Logger
}

func NewCoordinator(transcripts TranscriptProvider, summarizer *Summarizer, images llm.Client, imageModel string, taskTimeout time.Duration, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		transcripts: transcripts,
		summarizer:  summarizer,
		images:      images,
		imageModel:  imageModel,
		taskTimeout: taskTimeout,
		logger:      logger,
	}
}

// Run executes the fan-out stage. Summaries come back concatenated in the
// original input order of urls regardless of task completion order. A video
// whose URL yields no ID or whose transcript cannot be fetched contributes
// nothing; a summarization or image failure cancels the remaining tasks and
// fails the whole run.
func (c *Coordinator) Run(ctx context.Context, urls []string, topic string) (combined string, imageURL string, err error) {
	group, ctx := errgroup.WithContext(ctx)

	summaries := make([]string, len(urls))
	for i, url := range urls {
		i, url := i, url
		group.Go(func() error {
			summary, err := c.summarizeVideo(ctx, url, i)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}

	group.Go(func() error {
		taskCtx, cancel := c.taskContext(ctx)
		defer cancel()

		url, err := c.images.GenerateImage(taskCtx, c.imageModel, imagePrompt(topic))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrImageGeneration, err)
		}
		imageURL = url
		return nil
	})

	if err := group.Wait(); err != nil {
		return "", "", err
	}

	nonEmpty := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, summarySeparator), imageURL, nil
}

// summarizeVideo runs {extract → fetch → summarize} for one URL. Extraction
// and fetch failures degrade to an empty summary; summarization failures are
// fatal.
func (c *Coordinator) summarizeVideo(ctx context.Context, url string, idx int) (string, error) {
	taskCtx, cancel := c.taskContext(ctx)
	defer cancel()

	start := time.Now()

	videoID := youtube.ExtractVideoID(url)
	if videoID == "" {
		c.logger.Warn("no video ID in URL, skipping", "index", idx, "url", url)
		return "", nil
	}

	segments, err := c.transcripts.Fetch(taskCtx, videoID)
	if err != nil {
		c.logger.Warn("transcript fetch failed, skipping video",
			"index", idx, "video_id", videoID, "error", err)
		return "", nil
	}

	summary, err := c.summarizer.Summarize(taskCtx, youtube.JoinSegments(segments))
	if err != nil {
		return "", err
	}

	c.logger.Debug("video summarized",
		"index", idx, "video_id", videoID, "duration", time.Since(start))
	return summary, nil
}

func (c *Coordinator) taskContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.taskTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.taskTimeout)
}
