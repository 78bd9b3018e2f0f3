package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklibrary-backend/internal/domains/book/model"
	"booklibrary-backend/internal/domains/book/repository"
	"booklibrary-backend/internal/domains/book/service"
)

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (noopCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (noopCache) Ping(ctx context.Context) error                          { return nil }

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewService(repository.NewMemoryRepository(), noopCache{}, nil)
	h := NewHandler(svc)

	router := gin.New()
	group := router.Group("/api/v1/custom-books")
	group.GET("", h.GetCustomBooks)
	group.POST("", h.CreateCustomBook)
	group.GET("/:id", h.GetCustomBook)
	group.PUT("/:id", h.UpdateCustomBook)
	group.DELETE("/:id", h.DeleteCustomBook)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type bookEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Book model.Book `json:"book"`
	} `json:"data"`
	Error string `json:"error"`
}

func decodeBook(t *testing.T, w *httptest.ResponseRecorder) bookEnvelope {
	t.Helper()
	var env bookEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCreateCustomBook(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/custom-books", `{"title":"Dune"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeBook(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Dune", env.Data.Book.Title)
	assert.Equal(t, []string{model.UnknownAuthor}, env.Data.Book.Authors)
	assert.Equal(t, model.StatusWantToRead, env.Data.Book.Status)
	assert.True(t, env.Data.Book.IsCustom)
	assert.NotEmpty(t, env.Data.Book.ID)
}

func TestCreateCustomBookStringAuthors(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/custom-books",
		`{"title":"Dune","authors":"Frank Herbert"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeBook(t, w)
	assert.Equal(t, []string{"Frank Herbert"}, env.Data.Book.Authors)
}

func TestCreateCustomBookValidation(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/custom-books", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeBook(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Title is required", env.Error)

	w = doJSON(t, router, http.MethodPost, "/api/v1/custom-books", `{"title":"Dune","status":"finished"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status", decodeBook(t, w).Error)

	w = doJSON(t, router, http.MethodPost, "/api/v1/custom-books", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeBook(t, w).Error)
}

func TestListCustomBooks(t *testing.T) {
	router := setupRouter()

	doJSON(t, router, http.MethodPost, "/api/v1/custom-books", `{"title":"Dune"}`)
	doJSON(t, router, http.MethodPost, "/api/v1/custom-books", `{"title":"Hyperion"}`)

	w := doJSON(t, router, http.MethodGet, "/api/v1/custom-books", "")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Books []model.Book `json:"books"`
			Count int          `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Data.Count)
	require.Len(t, env.Data.Books, 2)
	assert.Equal(t, "Hyperion", env.Data.Books[0].Title, "newest first")
}

func TestUpdateCustomBook(t *testing.T) {
	router := setupRouter()

	created := decodeBook(t, doJSON(t, router, http.MethodPost, "/api/v1/custom-books",
		`{"title":"Dune","authors":["Frank Herbert"]}`))
	id := created.Data.Book.ID

	w := doJSON(t, router, http.MethodPut, "/api/v1/custom-books/"+id, `{"status":"read"}`)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeBook(t, w)
	assert.Equal(t, "read", env.Data.Book.Status)
	assert.Equal(t, "Dune", env.Data.Book.Title)
	assert.Equal(t, []string{"Frank Herbert"}, env.Data.Book.Authors)
	assert.False(t, env.Data.Book.UpdatedDate.Before(created.Data.Book.UpdatedDate))
}

func TestUpdateCustomBookRejectsEmptyBody(t *testing.T) {
	router := setupRouter()

	created := decodeBook(t, doJSON(t, router, http.MethodPost, "/api/v1/custom-books", `{"title":"Dune"}`))
	id := created.Data.Book.ID

	w := doJSON(t, router, http.MethodPut, "/api/v1/custom-books/"+id, `{"publisher":"Ace"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid fields to update", decodeBook(t, w).Error)
}

func TestDeleteCustomBook(t *testing.T) {
	router := setupRouter()

	created := decodeBook(t, doJSON(t, router, http.MethodPost, "/api/v1/custom-books", `{"title":"Dune"}`))
	id := created.Data.Book.ID

	w := doJSON(t, router, http.MethodDelete, "/api/v1/custom-books/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dune", decodeBook(t, w).Data.Book.Title, "returns pre-deletion snapshot")

	w = doJSON(t, router, http.MethodGet, "/api/v1/custom-books/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCustomBookNotFound(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/custom-books/custom_1_missing00", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeBook(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Book not found", env.Error)
}
