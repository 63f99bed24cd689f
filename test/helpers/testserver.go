package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"yamdb_backend/internal/app"
	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/config"

	"gorm.io/gorm"
)

// TestServer runs the full HTTP stack against a real Postgres database.
// Construction skips the test when DATABASE_URL is not set.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL is not set, skipping integration test")
	}

	config.LoadConfig()
	cfg := config.GetConfig()

	db, err := app.OpenDatabase(cfg.Database.DSN)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := app.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(db, cfg)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
		Tokens: auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL),
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// ClearTables wipes every domain table between tests.
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()

	err := ts.DB.Exec(
		"TRUNCATE TABLE comments, reviews, title_genres, titles, genres, categories, users CASCADE",
	).Error
	if err != nil {
		t.Fatalf("failed to clear tables: %v", err)
	}
}

// SendRequest performs an HTTP call against the test server and returns
// the response together with its body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(resBody)
}
