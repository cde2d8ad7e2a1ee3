package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNew_CreatesSchema(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database, err := New(dbPath, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer database.Close()

	for _, table := range []string{"users", "articles", "deployments"} {
		var name string
		err := database.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}
}

func TestNew_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	first, err := New(dbPath, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	first.Close()

	// Opening the same file again must re-apply migrations without error.
	second, err := New(dbPath, nil)
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	defer second.Close()

	if err := second.Health(context.Background()); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}

func TestNew_DuplicateFingerprintRejected(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := New(filepath.Join(tmpDir, "test.db"), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer database.Close()

	conn := database.Conn()
	if _, err := conn.Exec(`INSERT INTO users (id, username, created_at) VALUES (1, 'u', '2024-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO articles (id, title, question, paragraphs, image_url, user_id, created_at)
		VALUES (1, 't', 'q', '[]', '', 1, '2024-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("insert article: %v", err)
	}

	insert := `INSERT INTO deployments (deployment_name, deployment_video, user_id, blog_id, created_at)
		VALUES (?, 'abc xyz', 1, 1, '2024-01-01T00:00:00Z')`
	if _, err := conn.Exec(insert, "first"); err != nil {
		t.Fatalf("first deployment insert: %v", err)
	}
	if _, err := conn.Exec(insert, "second"); err == nil {
		t.Error("second insert with same deployment_video should violate unique index")
	}
}
