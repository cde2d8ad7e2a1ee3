package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vidjalsa/vidjalsa/internal/blog"
	"github.com/vidjalsa/vidjalsa/internal/pipeline"
	"github.com/vidjalsa/vidjalsa/internal/youtube"
)

// VideoProcessor runs the full processing pipeline for one request.
type VideoProcessor interface {
	Process(ctx context.Context, urls []string, topic string) (*pipeline.Result, error)
}

// PreviewProvider searches for candidate videos on a topic.
type PreviewProvider interface {
	Search(ctx context.Context, topic string, maxResults int) ([]youtube.VideoPreview, error)
}

// TrendsProvider returns the current trending topics.
type TrendsProvider interface {
	Trending(ctx context.Context) ([]string, error)
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

type ServerConfig struct {
	Port           int
	Processor      VideoProcessor
	Previews       PreviewProvider
	Trends         TrendsProvider
	Repository     blog.Repository
	UserID         int64
	DeploymentsDir string
	Logger         *slog.Logger
	StartTime      time.Time
}

func NewServer(cfg ServerConfig) *Server {
	router := NewRouter(cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}
