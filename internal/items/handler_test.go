package items

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reviewhub/internal/apperr"
	"reviewhub/pkg/database"
	"reviewhub/pkg/models"
)

func newTestHandler(t *testing.T) (*gin.Engine, *Repo) {
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

	repo := NewRepo(db)
	r := gin.New()
	NewHandler(repo).RegisterRoutes(r.Group("/items"))
	return r, repo
}

func TestListAndGetItems(t *testing.T) {
	r, repo := newTestHandler(t)

	hotdog, err := repo.Create(context.Background(), "hotdog")
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list code = %d", w.Code)
	}
	var listed []models.Item
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "hotdog" {
		t.Fatalf("listed = %+v", listed)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+hotdog.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get code = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+uuid.NewString(), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown item code = %d, want 404", w.Code)
	}
}

func TestDuplicateItemNameConflicts(t *testing.T) {
	_, repo := newTestHandler(t)

	if _, err := repo.Create(context.Background(), "hotdog"); err != nil {
		t.Fatalf("create item: %v", err)
	}

	_, err := repo.Create(context.Background(), "hotdog")
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindConflict {
		t.Fatalf("duplicate item err = %v, want conflict", err)
	}
}
