package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vidjalsa/vidjalsa/internal/blog"
	"github.com/vidjalsa/vidjalsa/internal/pipeline"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(CORSMiddleware())

	r.Get("/health", healthHandler(cfg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/process_videos", processVideosHandler(cfg))
		r.Post("/videos_preview", videosPreviewHandler(cfg))
		r.Get("/trending", trendingHandler(cfg))

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", listArticlesHandler(cfg))
			r.Post("/", createArticleHandler(cfg))
			r.Get("/{id}", getArticleHandler(cfg))
			r.Put("/{id}", updateArticleHandler(cfg))
			r.Delete("/{id}", deleteArticleHandler(cfg))
		})

		r.Get("/deployments", listDeploymentsHandler(cfg))
	})

	// Rendered articles are served straight off disk.
	fileServer := http.StripPrefix("/deployments/", http.FileServer(http.Dir(cfg.DeploymentsDir)))
	r.Get("/deployments/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: "0.1.0",
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}

func processVideosHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProcessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if len(req.Urls) == 0 {
			WriteError(w, http.StatusBadRequest, "urls is required", "BAD_REQUEST")
			return
		}

		result, err := cfg.Processor.Process(r.Context(), req.Urls, req.Topic)
		if err != nil {
			if errors.Is(err, pipeline.ErrNoVideoIDs) {
				WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
				return
			}
			cfg.Logger.Error("video processing failed", "error", err)
			WriteError(w, http.StatusInternalServerError,
				"an error occurred during video processing", "PROCESSING_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, ProcessResponse{
			Message:       result.Message,
			DeploymentURL: result.DeploymentURL,
		})
	}
}

func videosPreviewHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Video == "" {
			WriteError(w, http.StatusBadRequest, "video is required", "BAD_REQUEST")
			return
		}

		previews, err := cfg.Previews.Search(r.Context(), req.Video, 10)
		if err != nil {
			cfg.Logger.Error("video preview search failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "video search failed", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, previews)
	}
}

func trendingHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := cfg.Trends.Trending(r.Context())
		if err != nil {
			cfg.Logger.Error("trending topics fetch failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to fetch trending topics", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, topics)
	}
}

func listArticlesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articles, err := cfg.Repository.ListArticlesByUser(r.Context(), cfg.UserID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list articles", "INTERNAL_ERROR")
			return
		}
		resp := ArticlesResponse{Articles: make([]ArticleResponse, len(articles))}
		for i, a := range articles {
			resp.Articles[i] = ArticleToResponse(a)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func createArticleHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ArticleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Title == "" || len(req.Paragraphs) == 0 {
			WriteError(w, http.StatusBadRequest, "title and paragraphs are required", "BAD_REQUEST")
			return
		}

		article := &blog.Article{
			Title:      req.Title,
			Question:   req.Question,
			Paragraphs: req.Paragraphs,
			ImageURL:   req.ImageURL,
			UserID:     cfg.UserID,
		}
		if err := cfg.Repository.CreateArticle(r.Context(), article); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to create article", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusCreated, ArticleToResponse(article))
	}
}

func getArticleHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := articleID(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid article id", "BAD_REQUEST")
			return
		}

		article, err := cfg.Repository.GetArticle(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to load article", "INTERNAL_ERROR")
			return
		}
		if article == nil {
			WriteError(w, http.StatusNotFound, "article not found", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, ArticleToResponse(article))
	}
}

func updateArticleHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := articleID(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid article id", "BAD_REQUEST")
			return
		}

		var req ArticleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		article, err := cfg.Repository.GetArticle(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to load article", "INTERNAL_ERROR")
			return
		}
		if article == nil {
			WriteError(w, http.StatusNotFound, "article not found", "NOT_FOUND")
			return
		}

		article.Title = req.Title
		article.Question = req.Question
		article.Paragraphs = req.Paragraphs
		article.ImageURL = req.ImageURL
		if err := cfg.Repository.UpdateArticle(r.Context(), article); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to update article", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, ArticleToResponse(article))
	}
}

func deleteArticleHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := articleID(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid article id", "BAD_REQUEST")
			return
		}
		if err := cfg.Repository.DeleteArticle(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to delete article", "INTERNAL_ERROR")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listDeploymentsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deployments, err := cfg.Repository.ListDeployments(r.Context(), 50)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list deployments", "INTERNAL_ERROR")
			return
		}
		resp := DeploymentsResponse{Deployments: make([]DeploymentResponse, len(deployments))}
		for i, d := range deployments {
			resp.Deployments[i] = DeploymentToResponse(d)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func articleID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
