package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vidjalsa/vidjalsa/internal/blog"
	"github.com/vidjalsa/vidjalsa/internal/pipeline"
)

const indexFilename = "index.html"

// Publisher persists synthesized articles and writes their rendered pages
// under the deployments directory.
type Publisher struct {
	repo       blog.Repository
	renderer   *Renderer
	deployDir  string
	baseURL    string
	authorBase string
	logger     *slog.Logger
}

func NewPublisher(repo blog.Repository, renderer *Renderer, deployDir, baseURL, authorBase string, logger *slog.Logger) *Publisher {
	return &Publisher{
		repo:       repo,
		renderer:   renderer,
		deployDir:  deployDir,
		baseURL:    baseURL,
		authorBase: authorBase,
		logger:     logger,
	}
}

// deploymentName builds a unique directory name: base identity, timestamp at
// second resolution for human orientation, and a random token so two
// deployments in the same second cannot collide.
func (p *Publisher) deploymentName() string {
	return fmt.Sprintf("%s_%s_%s",
		p.authorBase,
		time.Now().Format("2006-01-02_15-04-05"),
		uuid.NewString()[:8])
}

// Publish persists the article and its deployment record, renders the page,
// and returns the public URL. Row inserts happen before the filesystem
// write; a render failure after commit leaves the rows in place, and the
// next identical request heals it by re-rendering from them.
func (p *Publisher) Publish(ctx context.Context, payload *pipeline.ArticlePayload, imageURL string, userID int64, fingerprint string) (string, error) {
	article := &blog.Article{
		Title:      payload.Title,
		Question:   payload.Question,
		Paragraphs: payload.Paragraphs,
		ImageURL:   imageURL,
		UserID:     userID,
	}
	if err := p.repo.CreateArticle(ctx, article); err != nil {
		return "", fmt.Errorf("persist article: %w", err)
	}

	name := p.deploymentName()
	deployment := &blog.Deployment{
		Name:      name,
		VideoSet:  fingerprint,
		UserID:    userID,
		ArticleID: article.ID,
	}
	if err := p.repo.CreateDeployment(ctx, deployment); err != nil {
		return "", fmt.Errorf("persist deployment: %w", err)
	}

	url, err := p.writePage(article, payload.Author, name)
	if err != nil {
		return "", err
	}

	p.logger.Info("article published",
		"article_id", article.ID, "deployment", name, "url", url)
	return url, nil
}

// RenderExisting re-renders an already persisted article to a fresh
// deployment directory. No new rows are written; every cache hit still costs
// one filesystem write.
func (p *Publisher) RenderExisting(ctx context.Context, articleID int64) (string, error) {
	article, err := p.repo.GetArticle(ctx, articleID)
	if err != nil {
		return "", fmt.Errorf("load article: %w", err)
	}
	if article == nil {
		return "", fmt.Errorf("article %d not found", articleID)
	}

	author := p.authorBase
	if user, err := p.repo.GetUser(ctx, article.UserID); err == nil && user != nil {
		author = user.Username
	}

	name := p.deploymentName()
	url, err := p.writePage(article, author, name)
	if err != nil {
		return "", err
	}

	p.logger.Info("cached article re-rendered",
		"article_id", article.ID, "deployment", name, "url", url)
	return url, nil
}

func (p *Publisher) writePage(article *blog.Article, author, name string) (string, error) {
	page, err := p.renderer.Render(article, author)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(p.deployDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create deployment dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, indexFilename), page, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", indexFilename, err)
	}

	return fmt.Sprintf("%s/deployments/%s/%s", p.baseURL, name, indexFilename), nil
}
