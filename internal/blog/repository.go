package blog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type Repository interface {
	EnsureUser(ctx context.Context, username string) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)

	CreateArticle(ctx context.Context, a *Article) error
	GetArticle(ctx context.Context, id int64) (*Article, error)
	ListArticlesByUser(ctx context.Context, userID int64) ([]*Article, error)
	UpdateArticle(ctx context.Context, a *Article) error
	DeleteArticle(ctx context.Context, id int64) error

	CreateDeployment(ctx context.Context, d *Deployment) error
	FindDeploymentByVideoSet(ctx context.Context, videoSet string) (*Deployment, error)
	ListDeployments(ctx context.Context, limit int) ([]*Deployment, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// EnsureUser returns the user with the given username, creating it if absent.
func (r *SQLiteRepository) EnsureUser(ctx context.Context, username string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at FROM users WHERE username = ?
	`, username)
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, created_at) VALUES (?, '', ?)
	`, username, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &User{ID: id, Username: username, CreatedAt: now}, nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at FROM users WHERE id = ?
	`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

func (r *SQLiteRepository) CreateArticle(ctx context.Context, a *Article) error {
	paragraphs, err := json.Marshal(a.Paragraphs)
	if err != nil {
		return fmt.Errorf("encode paragraphs: %w", err)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO articles (title, question, paragraphs, image_url, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.Title, a.Question, string(paragraphs), a.ImageURL, a.UserID, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}
	a.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteRepository) GetArticle(ctx context.Context, id int64) (*Article, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, question, paragraphs, image_url, user_id, created_at
		FROM articles WHERE id = ?
	`, id)

	var a Article
	var paragraphs, createdAt string
	err := row.Scan(&a.ID, &a.Title, &a.Question, &paragraphs, &a.ImageURL, &a.UserID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(paragraphs), &a.Paragraphs); err != nil {
		return nil, fmt.Errorf("decode paragraphs: %w", err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &a, nil
}

func (r *SQLiteRepository) ListArticlesByUser(ctx context.Context, userID int64) ([]*Article, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, question, paragraphs, image_url, user_id, created_at
		FROM articles WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		var a Article
		var paragraphs, createdAt string
		if err := rows.Scan(&a.ID, &a.Title, &a.Question, &paragraphs, &a.ImageURL, &a.UserID, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(paragraphs), &a.Paragraphs); err != nil {
			return nil, fmt.Errorf("decode paragraphs: %w", err)
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}

func (r *SQLiteRepository) UpdateArticle(ctx context.Context, a *Article) error {
	paragraphs, err := json.Marshal(a.Paragraphs)
	if err != nil {
		return fmt.Errorf("encode paragraphs: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE articles SET title = ?, question = ?, paragraphs = ?, image_url = ? WHERE id = ?
	`, a.Title, a.Question, string(paragraphs), a.ImageURL, a.ID)
	return err
}

func (r *SQLiteRepository) DeleteArticle(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) CreateDeployment(ctx context.Context, d *Deployment) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO deployments (deployment_name, deployment_video, user_id, blog_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, d.Name, d.VideoSet, d.UserID, d.ArticleID, d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}
	d.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteRepository) FindDeploymentByVideoSet(ctx context.Context, videoSet string) (*Deployment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, deployment_name, deployment_video, user_id, blog_id, created_at
		FROM deployments WHERE deployment_video = ?
	`, videoSet)
	return scanDeployment(row)
}

func scanDeployment(row *sql.Row) (*Deployment, error) {
	var d Deployment
	var createdAt string
	err := row.Scan(&d.ID, &d.Name, &d.VideoSet, &d.UserID, &d.ArticleID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &d, nil
}

func (r *SQLiteRepository) ListDeployments(ctx context.Context, limit int) ([]*Deployment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, deployment_name, deployment_video, user_id, blog_id, created_at
		FROM deployments ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deployments []*Deployment
	for rows.Next() {
		var d Deployment
		var createdAt string
		if err := rows.Scan(&d.ID, &d.Name, &d.VideoSet, &d.UserID, &d.ArticleID, &createdAt); err != nil {
			return nil, err
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		deployments = append(deployments, &d)
	}
	return deployments, rows.Err()
}
