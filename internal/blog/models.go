// Package blog holds the persisted entities of the article pipeline and
// their SQLite repository.
package blog

import "time"

// User owns articles and deployments. A single default user is seeded at
// startup; the server does not authenticate requests.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Article is one synthesized article. Never mutated by the pipeline after
// creation; the update path exists only for the CRUD routes.
type Article struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Question   string    `json:"question"`
	Paragraphs []string  `json:"paragraphs"`
	ImageURL   string    `json:"image_url"`
	UserID     int64     `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Deployment records one published article. VideoSet is the request
// fingerprint (sorted, space-joined video IDs); its existence is the dedup
// marker for identical requests.
type Deployment struct {
	ID        int64     `json:"id"`
	Name      string    `json:"deployment_name"`
	VideoSet  string    `json:"deployment_video"`
	UserID    int64     `json:"user_id"`
	ArticleID int64     `json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
}
