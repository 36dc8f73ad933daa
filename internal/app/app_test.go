package app

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/items"
	"reviewhub/pkg/database"
	"reviewhub/pkg/models"
	"reviewhub/pkg/utils"
)

func newTestApp(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("db migrate: %v", err)
	}

	cfg := utils.AuthConfig{
		JWTSecret:   "test-secret",
		JWTIssuer:   "test",
		JWTDuration: time.Hour,
	}
	return NewRouter(db, cfg), db
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/auth/register", "", gin.H{"username": username, "password": password})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: code %d, body %s", username, w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/auth/login", "", gin.H{"username": username, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: code %d, body %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login %s: no token (err %v, body %s)", username, err, w.Body.String())
	}
	return resp.Token
}

// The whole flow: register, login, review an item, collide on the
// uniqueness rule, comment as another user, and bounce off ownership.
func TestEndToEnd(t *testing.T) {
	r, db := newTestApp(t)

	kateToken := signUp(t, r, "kate", "secret1")

	// items are seeded out-of-band
	hotdog, err := items.NewRepo(db).Create(context.Background(), "hotdog")
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	w := do(t, r, http.MethodPost, "/items/"+hotdog.ID+"/reviews", kateToken, gin.H{"text": "great", "rating": 5})
	if w.Code != http.StatusCreated {
		t.Fatalf("create review: code %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		Review models.Review `json:"review"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode review: %v", err)
	}

	w = do(t, r, http.MethodPost, "/items/"+hotdog.ID+"/reviews", kateToken, gin.H{"text": "again", "rating": 4})
	if w.Code != http.StatusConflict {
		t.Fatalf("second review: code %d, want 409", w.Code)
	}

	kaiToken := signUp(t, r, "kai", "secret2")

	w = do(t, r, http.MethodPost, "/reviews/"+created.Review.ID+"/comments", kaiToken, gin.H{"text": "love this review"})
	if w.Code != http.StatusCreated {
		t.Fatalf("comment: code %d, body %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodDelete, "/reviews/"+created.Review.ID, kaiToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("kai deleting kate's review: code %d, want 403", w.Code)
	}

	// kate's review is still there
	w = do(t, r, http.MethodGet, "/items/"+hotdog.ID+"/reviews", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list reviews: code %d", w.Code)
	}
	var listed []models.Review
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d reviews, want 1", len(listed))
	}
}

func TestProtectedRoutesFailClosed(t *testing.T) {
	r, _ := newTestApp(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodGet, "/reviews/me"},
		{http.MethodGet, "/comments/me"},
		{http.MethodPost, "/items/x/reviews"},
		{http.MethodPut, "/reviews/x"},
		{http.MethodDelete, "/reviews/x"},
		{http.MethodPost, "/reviews/x/comments"},
		{http.MethodDelete, "/comments/x"},
	}
	for _, tc := range protected {
		w := do(t, r, tc.method, tc.path, "", gin.H{"text": "x", "rating": 5})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: code %d, want 401", tc.method, tc.path, w.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestApp(t)
	w := do(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health code = %d", w.Code)
	}
}
