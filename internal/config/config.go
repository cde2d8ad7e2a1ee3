// Package config provides configuration management for the VidJalsa server.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// Default values
	DefaultPort       = 7000
	DefaultLogLevel   = "info"
	DefaultDataDir    = ".vidjalsa"
	DefaultAuthorBase = "vidjalsa"

	// Environment variable names
	EnvPort       = "VIDJALSA_PORT"
	EnvLogLevel   = "VIDJALSA_LOG_LEVEL"
	EnvDataDir    = "VIDJALSA_DATA_DIR"
	EnvBaseURL    = "VIDJALSA_BASE_URL"
	EnvAuthorBase = "VIDJALSA_AUTHOR_BASE"

	// Provider environment variable names
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvSummaryModel  = "VIDJALSA_SUMMARY_MODEL"
	EnvArticleModel  = "VIDJALSA_ARTICLE_MODEL"
	EnvImageModel    = "VIDJALSA_IMAGE_MODEL"
	EnvYouTubeAPIKey = "YOUTUBE_API_KEY"
	EnvTaskTimeout   = "VIDJALSA_TASK_TIMEOUT_S"

	// Database filename
	DBFilename = "vidjalsa.db"

	// Model defaults
	DefaultSummaryModel = "gpt-4o-mini"
	DefaultArticleModel = "gpt-4o"
	DefaultImageModel   = "dall-e-3"

	// Per-task timeout for fan-out work (seconds)
	DefaultTaskTimeout = 120
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	DeploymentsDir() string
	BaseURL() string
	AuthorBase() string
	OpenAIAPIKey() string
	OpenAIBaseURL() string
	SummaryModel() string
	ArticleModel() string
	ImageModel() string
	YouTubeAPIKey() string
	TaskTimeout() time.Duration
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port       int
	logLevel   string
	dataDir    string
	baseURL    string
	authorBase string

	openAIAPIKey  string
	openAIBaseURL string
	summaryModel  string
	articleModel  string
	imageModel    string
	youtubeAPIKey string
	taskTimeout   time.Duration
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:         DefaultPort,
		logLevel:     DefaultLogLevel,
		dataDir:      defaultDataDir(),
		authorBase:   DefaultAuthorBase,
		summaryModel: DefaultSummaryModel,
		articleModel: DefaultArticleModel,
		imageModel:   DefaultImageModel,
		taskTimeout:  DefaultTaskTimeout * time.Second,
	}

	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if bu := os.Getenv(EnvBaseURL); bu != "" {
		cfg.baseURL = bu
	}

	if ab := os.Getenv(EnvAuthorBase); ab != "" {
		cfg.authorBase = ab
	}

	cfg.openAIAPIKey = os.Getenv(EnvOpenAIAPIKey)
	cfg.openAIBaseURL = os.Getenv(EnvOpenAIBaseURL)
	cfg.youtubeAPIKey = os.Getenv(EnvYouTubeAPIKey)

	if m := os.Getenv(EnvSummaryModel); m != "" {
		cfg.summaryModel = m
	}
	if m := os.Getenv(EnvArticleModel); m != "" {
		cfg.articleModel = m
	}
	if m := os.Getenv(EnvImageModel); m != "" {
		cfg.imageModel = m
	}

	if t := os.Getenv(EnvTaskTimeout); t != "" {
		secs, err := strconv.Atoi(t)
		if err != nil || secs < 1 {
			return nil, fmt.Errorf("invalid %s: must be a positive integer of seconds", EnvTaskTimeout)
		}
		cfg.taskTimeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// DeploymentsDir returns the directory rendered articles are written to
func (c *EnvConfig) DeploymentsDir() string {
	return filepath.Join(c.dataDir, "deployments")
}

// BaseURL returns the public base URL deployment links are built from.
// Defaults to the local listen address.
func (c *EnvConfig) BaseURL() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("http://127.0.0.1:%d", c.port)
}

// AuthorBase returns the base identity used in deployment names
func (c *EnvConfig) AuthorBase() string {
	return c.authorBase
}

func (c *EnvConfig) OpenAIAPIKey() string {
	return c.openAIAPIKey
}

func (c *EnvConfig) OpenAIBaseURL() string {
	return c.openAIBaseURL
}

func (c *EnvConfig) SummaryModel() string {
	return c.summaryModel
}

func (c *EnvConfig) ArticleModel() string {
	return c.articleModel
}

func (c *EnvConfig) ImageModel() string {
	return c.imageModel
}

func (c *EnvConfig) YouTubeAPIKey() string {
	return c.youtubeAPIKey
}

// TaskTimeout returns the per-task deadline for fan-out work
func (c *EnvConfig) TaskTimeout() time.Duration {
	return c.taskTimeout
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
