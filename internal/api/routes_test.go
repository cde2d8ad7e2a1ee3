package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/vidjalsa/vidjalsa/internal/blog"
	"github.com/vidjalsa/vidjalsa/internal/db"
	"github.com/vidjalsa/vidjalsa/internal/pipeline"
	"github.com/vidjalsa/vidjalsa/internal/youtube"
)

type fakeProcessor struct {
	result *pipeline.Result
	err    error
}

func (f *fakeProcessor) Process(ctx context.Context, urls []string, topic string) (*pipeline.Result, error) {
	return f.result, f.err
}

type fakePreviews struct {
	previews []youtube.VideoPreview
	err      error
}

func (f *fakePreviews) Search(ctx context.Context, topic string, maxResults int) ([]youtube.VideoPreview, error) {
	return f.previews, f.err
}

type fakeTrends struct {
	topics []string
	err    error
}

func (f *fakeTrends) Trending(ctx context.Context) ([]string, error) {
	return f.topics, f.err
}

func testServerConfig(t *testing.T) ServerConfig {
	t.Helper()
	tmp := t.TempDir()

	database, err := db.New(filepath.Join(tmp, "test.db"), nil)
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })

	repo := blog.NewRepository(database.Conn())
	user, err := repo.EnsureUser(context.Background(), "vidjalsa")
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}

	return ServerConfig{
		Port: 7000,
		Processor: &fakeProcessor{result: &pipeline.Result{
			Message:       "The Processing Is Finished!",
			DeploymentURL: "http://127.0.0.1:7000/deployments/x/index.html",
		}},
		Previews:       &fakePreviews{},
		Trends:         &fakeTrends{topics: []string{"topic one", "topic two"}},
		Repository:     repo,
		UserID:         user.ID,
		DeploymentsDir: filepath.Join(tmp, "deployments"),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		StartTime:      time.Now(),
	}
}

func doRequest(t *testing.T, cfg ServerConfig, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	NewRouter(cfg).ServeHTTP(rr, req)
	return rr
}

func decodeJSONBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestHealthHandler(t *testing.T) {
	cfg := testServerConfig(t)
	rr := doRequest(t, cfg, http.MethodGet, "/health", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	body := decodeJSONBody(t, rr)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}

func TestProcessVideosHandler(t *testing.T) {
	cfg := testServerConfig(t)
	rr := doRequest(t, cfg, http.MethodPost, "/api/v1/process_videos", ProcessRequest{
		Urls:  []string{"https://youtube.com/watch?v=abc123"},
		Topic: "space travel",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	body := decodeJSONBody(t, rr)
	if body["message"] != "The Processing Is Finished!" {
		t.Errorf("message = %v", body["message"])
	}
	if !strings.HasSuffix(body["deployment_url"].(string), "/index.html") {
		t.Errorf("deployment_url = %v", body["deployment_url"])
	}
}

func TestProcessVideosHandler_EmptyUrls(t *testing.T) {
	cfg := testServerConfig(t)
	rr := doRequest(t, cfg, http.MethodPost, "/api/v1/process_videos", ProcessRequest{Topic: "t"})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestProcessVideosHandler_NoVideoIDs(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.Processor = &fakeProcessor{err: pipeline.ErrNoVideoIDs}

	rr := doRequest(t, cfg, http.MethodPost, "/api/v1/process_videos", ProcessRequest{
		Urls: []string{"https://vimeo.com/1"},
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestProcessVideosHandler_PipelineFailure(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.Processor = &fakeProcessor{err: errors.New("model exploded")}

	rr := doRequest(t, cfg, http.MethodPost, "/api/v1/process_videos", ProcessRequest{
		Urls: []string{"https://youtu.be/abc"},
	})
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	// Internal detail must not leak; the caller gets a generic message.
	body := decodeJSONBody(t, rr)
	if strings.Contains(body["error"].(string), "exploded") {
		t.Error("internal error detail leaked to client")
	}
}

func TestVideosPreviewHandler(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.Previews = &fakePreviews{previews: []youtube.VideoPreview{
		{Title: "A Video", Link: "https://www.youtube.com/watch?v=abc", VideoID: "abc", Duration: 120},
	}}

	rr := doRequest(t, cfg, http.MethodPost, "/api/v1/videos_preview", PreviewRequest{Video: "space"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var previews []youtube.VideoPreview
	if err := json.NewDecoder(rr.Body).Decode(&previews); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(previews) != 1 || previews[0].VideoID != "abc" {
		t.Errorf("previews = %v", previews)
	}
}

func TestVideosPreviewHandler_MissingTopic(t *testing.T) {
	cfg := testServerConfig(t)
	rr := doRequest(t, cfg, http.MethodPost, "/api/v1/videos_preview", PreviewRequest{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestTrendingHandler(t *testing.T) {
	cfg := testServerConfig(t)
	rr := doRequest(t, cfg, http.MethodGet, "/api/v1/trending", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	var topics []string
	if err := json.NewDecoder(rr.Body).Decode(&topics); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(topics) != 2 {
		t.Errorf("topics = %v", topics)
	}
}

func TestArticleCRUD(t *testing.T) {
	cfg := testServerConfig(t)

	rr := doRequest(t, cfg, http.MethodPost, "/api/v1/articles/", ArticleRequest{
		Title:      "A Title",
		Question:   "A Question?",
		Paragraphs: []string{"One.", "Two."},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", rr.Code, http.StatusCreated)
	}
	created := decodeJSONBody(t, rr)
	id := int64(created["id"].(float64))
	if id == 0 {
		t.Fatal("created article has zero id")
	}

	rr = doRequest(t, cfg, http.MethodGet, "/api/v1/articles/"+strconvItoa(id), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}

	rr = doRequest(t, cfg, http.MethodPut, "/api/v1/articles/"+strconvItoa(id), ArticleRequest{
		Title:      "New Title",
		Question:   "Q",
		Paragraphs: []string{"p"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d", rr.Code)
	}
	if got := decodeJSONBody(t, rr)["title"]; got != "New Title" {
		t.Errorf("title after update = %v", got)
	}

	rr = doRequest(t, cfg, http.MethodDelete, "/api/v1/articles/"+strconvItoa(id), nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}

	rr = doRequest(t, cfg, http.MethodGet, "/api/v1/articles/"+strconvItoa(id), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGetArticle_InvalidID(t *testing.T) {
	cfg := testServerConfig(t)
	rr := doRequest(t, cfg, http.MethodGet, "/api/v1/articles/not-a-number", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestDeploymentStaticServing(t *testing.T) {
	cfg := testServerConfig(t)
	dir := filepath.Join(cfg.DeploymentsDir, "vidjalsa_2024-01-01_00-00-00_abcd1234")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	page := "<html><body>Stub Title</body></html>"
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	rr := doRequest(t, cfg, http.MethodGet,
		"/deployments/vidjalsa_2024-01-01_00-00-00_abcd1234/index.html", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "Stub Title") {
		t.Error("rendered page not served")
	}
}

func TestRequestIDHeader(t *testing.T) {
	cfg := testServerConfig(t)
	rr := doRequest(t, cfg, http.MethodGet, "/health", nil)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := testServerConfig(t)
	rr := doRequest(t, cfg, http.MethodOptions, "/api/v1/trending", nil)
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}

func strconvItoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
