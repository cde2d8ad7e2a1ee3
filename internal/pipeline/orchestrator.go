package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/vidjalsa/vidjalsa/internal/blog"
	"github.com/vidjalsa/vidjalsa/internal/youtube"
)

// successMessage is the fixed message returned for both the hit and miss
// paths.
const successMessage = "The Processing Is Finished!"

// Result is the caller-visible outcome of one processing request.
type Result struct {
	Message       string `json:"message"`
	DeploymentURL string `json:"deployment_url"`
}

// Publisher persists and renders a synthesized article, or re-renders an
// already persisted one on a cache hit.
type Publisher interface {
	Publish(ctx context.Context, payload *ArticlePayload, imageURL string, userID int64, fingerprint string) (string, error)
	RenderExisting(ctx context.Context, articleID int64) (string, error)
}

// Orchestrator sequences one request end to end: fingerprint → dedup check →
// cached re-render, or fan-out → synthesis → publish. Concurrent requests
// carrying the same fingerprint are collapsed onto one miss-path execution.
type Orchestrator struct {
	repo        blog.Repository
	coordinator *Coordinator
	synthesizer *Synthesizer
	publisher   Publisher
	userID      int64
	logger      *slog.Logger

	inflight singleflight.Group
}

func NewOrchestrator(repo blog.Repository, coordinator *Coordinator, synthesizer *Synthesizer, publisher Publisher, userID int64, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		repo:        repo,
		coordinator: coordinator,
		synthesizer: synthesizer,
		publisher:   publisher,
		userID:      userID,
		logger:      logger,
	}
}

// Fingerprint derives the content-addressed identity of a video set: the
// sorted IDs joined with single spaces. Order-independent by construction.
func Fingerprint(videoIDs []string) string {
	sorted := make([]string, len(videoIDs))
	copy(sorted, videoIDs)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

// Process turns a list of video URLs and a topic into a published article
// URL, serving identical video sets from cache.
func (o *Orchestrator) Process(ctx context.Context, urls []string, topic string) (*Result, error) {
	videoIDs := youtube.ExtractVideoIDs(urls)
	if len(videoIDs) == 0 {
		return nil, ErrNoVideoIDs
	}
	fingerprint := Fingerprint(videoIDs)
	logger := o.logger.With("fingerprint", fingerprint)

	existing, err := o.repo.FindDeploymentByVideoSet(ctx, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("dedup lookup: %w", err)
	}
	if existing != nil {
		logger.Info("cache hit, re-rendering existing article", "article_id", existing.ArticleID)
		return o.renderExisting(ctx, existing)
	}

	// The miss path runs once per fingerprint at a time; duplicate requests
	// that arrive while it is in flight share its result.
	v, err, shared := o.inflight.Do(fingerprint, func() (any, error) {
		// Re-check under the flight: an identical request may have
		// completed between our lookup and now.
		existing, err := o.repo.FindDeploymentByVideoSet(ctx, fingerprint)
		if err != nil {
			return nil, fmt.Errorf("dedup lookup: %w", err)
		}
		if existing != nil {
			return o.renderExisting(ctx, existing)
		}
		return o.processNew(ctx, urls, topic, fingerprint, logger)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Info("request coalesced with concurrent duplicate")
	}
	return v.(*Result), nil
}

func (o *Orchestrator) renderExisting(ctx context.Context, d *blog.Deployment) (*Result, error) {
	url, err := o.publisher.RenderExisting(ctx, d.ArticleID)
	if err != nil {
		return nil, err
	}
	return &Result{Message: successMessage, DeploymentURL: url}, nil
}

func (o *Orchestrator) processNew(ctx context.Context, urls []string, topic, fingerprint string, logger *slog.Logger) (*Result, error) {
	logger.Info("processing started", "videos", len(urls), "topic", topic)

	combined, imageURL, err := o.coordinator.Run(ctx, urls, topic)
	if err != nil {
		return nil, err
	}

	payload, err := o.synthesizer.Synthesize(ctx, combined)
	if err != nil {
		return nil, err
	}

	url, err := o.publisher.Publish(ctx, payload, imageURL, o.userID, fingerprint)
	if err != nil {
		return nil, err
	}

	logger.Info("processing finished", "title", payload.Title, "url", url)
	return &Result{Message: successMessage, DeploymentURL: url}, nil
}
