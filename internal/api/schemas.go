package api

import (
	"time"

	"github.com/vidjalsa/vidjalsa/internal/blog"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type ProcessRequest struct {
	Urls  []string `json:"urls"`
	Topic string   `json:"topic"`
}

type ProcessResponse struct {
	Message       string `json:"message"`
	DeploymentURL string `json:"deployment_url"`
}

type PreviewRequest struct {
	Video string `json:"video"`
}

type ArticleRequest struct {
	Title      string   `json:"title"`
	Question   string   `json:"question"`
	Paragraphs []string `json:"paragraphs"`
	ImageURL   string   `json:"image_url,omitempty"`
}

type ArticleResponse struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Question   string   `json:"question"`
	Paragraphs []string `json:"paragraphs"`
	ImageURL   string   `json:"image_url,omitempty"`
	UserID     int64    `json:"user_id"`
	CreatedAt  string   `json:"created_at"`
}

type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

type DeploymentResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"deployment_name"`
	VideoSet  string `json:"deployment_video"`
	ArticleID int64  `json:"blog_id"`
	CreatedAt string `json:"created_at"`
}

type DeploymentsResponse struct {
	Deployments []DeploymentResponse `json:"deployments"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func ArticleToResponse(a *blog.Article) ArticleResponse {
	return ArticleResponse{
		ID:         a.ID,
		Title:      a.Title,
		Question:   a.Question,
		Paragraphs: a.Paragraphs,
		ImageURL:   a.ImageURL,
		UserID:     a.UserID,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

func DeploymentToResponse(d *blog.Deployment) DeploymentResponse {
	return DeploymentResponse{
		ID:        d.ID,
		Name:      d.Name,
		VideoSet:  d.VideoSet,
		ArticleID: d.ArticleID,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}
