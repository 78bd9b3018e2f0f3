package library

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklibrary-backend/internal/domains/book/handler"
	"booklibrary-backend/internal/domains/book/model"
	"booklibrary-backend/internal/domains/book/repository"
	"booklibrary-backend/internal/domains/book/service"
	"booklibrary-backend/internal/domains/catalog"
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

// newTestLibrary wires a Library against a real in-process API server
// backed by the in-memory repository.
func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := handler.NewHandler(service.NewService(repository.NewMemoryRepository(), noopCache{}, nil))
	router := gin.New()
	router.GET("/custom-books", h.GetCustomBooks)
	router.POST("/custom-books", h.CreateCustomBook)
	router.GET("/custom-books/:id", h.GetCustomBook)
	router.PUT("/custom-books/:id", h.UpdateCustomBook)
	router.DELETE("/custom-books/:id", h.DeleteCustomBook)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	store := NewFileStore(filepath.Join(t.TempDir(), "library.json"))
	return New(store, NewAPIClient(srv.URL))
}

// newOfflineLibrary wires a Library whose API server is already gone.
func newOfflineLibrary(t *testing.T) *Library {
	t.Helper()

	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	store := NewFileStore(filepath.Join(t.TempDir(), "library.json"))
	return New(store, NewAPIClient(url))
}

func externalBook(id, title string) catalog.Book {
	year := 1965
	return catalog.Book{
		ID:          id,
		Title:       title,
		Authors:     []string{"Frank Herbert"},
		PublishYear: &year,
	}
}

func TestAddExternal(t *testing.T) {
	lib := newTestLibrary(t)

	res, err := lib.AddExternal(externalBook("/works/OL1W", "Dune"), "")
	require.NoError(t, err)
	assert.True(t, res.Success)

	snapshot := lib.GetAll(context.Background())
	require.Len(t, snapshot.Entries, 1)
	entry := snapshot.Entries[0]
	assert.Equal(t, OriginLocal, entry.Origin)
	assert.Equal(t, "want-to-read", entry.Status, "empty status defaults")
	assert.False(t, snapshot.Degraded)
}

func TestAddExternalDuplicateRejected(t *testing.T) {
	lib := newTestLibrary(t)

	_, err := lib.AddExternal(externalBook("/works/OL1W", "Dune"), "")
	require.NoError(t, err)

	res, err := lib.AddExternal(externalBook("/works/OL1W", "Dune"), "read")
	require.NoError(t, err, "a duplicate is a rejection, not an error")
	assert.False(t, res.Success)
	assert.Equal(t, "Book already in library", res.Message)

	assert.Len(t, lib.GetAll(context.Background()).Entries, 1)
}

func TestAddExternalInvalidStatus(t *testing.T) {
	lib := newTestLibrary(t)

	_, err := lib.AddExternal(externalBook("/works/OL1W", "Dune"), "finished")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}

func TestGetAllMergesBothOrigins(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	_, err := lib.CreateCustom(ctx, model.CreateBookRequest{Title: "My Notes"})
	require.NoError(t, err)
	_, err = lib.AddExternal(externalBook("/works/OL1W", "Dune"), "")
	require.NoError(t, err)

	snapshot := lib.GetAll(ctx)
	require.Len(t, snapshot.Entries, 2)
	assert.False(t, snapshot.Degraded)

	stats := snapshot.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Custom)
}

func TestGetAllDegradedWhenServerDown(t *testing.T) {
	lib := newOfflineLibrary(t)

	_, err := lib.AddExternal(externalBook("/works/OL1W", "Dune"), "")
	require.NoError(t, err, "local adds keep working offline")

	snapshot := lib.GetAll(context.Background())
	assert.True(t, snapshot.Degraded)
	require.Len(t, snapshot.Entries, 1)
	assert.Equal(t, OriginLocal, snapshot.Entries[0].Origin)
}

func TestUpdateDispatchesByOrigin(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	custom, err := lib.CreateCustom(ctx, model.CreateBookRequest{Title: "My Notes"})
	require.NoError(t, err)
	_, err = lib.AddExternal(externalBook("/works/OL1W", "Dune"), "")
	require.NoError(t, err)

	statusRead := model.UpdateBookRequest{
		Status: model.Optional[string]{Set: true, Value: model.StatusRead},
	}

	updatedCustom, err := lib.Update(ctx, *custom, statusRead)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRead, updatedCustom.Status)
	assert.Equal(t, OriginServer, updatedCustom.Origin)

	local, err := lib.Get(ctx, "/works/OL1W")
	require.NoError(t, err)
	updatedLocal, err := lib.Update(ctx, *local, statusRead)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRead, updatedLocal.Status)
	assert.NotNil(t, updatedLocal.CompletedDate, "first transition to read is stamped")
}

func TestUpdateLocalEmptyBody(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	_, err := lib.AddExternal(externalBook("/works/OL1W", "Dune"), "")
	require.NoError(t, err)

	entry, err := lib.Get(ctx, "/works/OL1W")
	require.NoError(t, err)

	_, err = lib.Update(ctx, *entry, model.UpdateBookRequest{})
	assert.ErrorIs(t, err, model.ErrNoValidFields)
}

func TestRemoveDispatchesByOrigin(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	custom, err := lib.CreateCustom(ctx, model.CreateBookRequest{Title: "My Notes"})
	require.NoError(t, err)
	_, err = lib.AddExternal(externalBook("/works/OL1W", "Dune"), "")
	require.NoError(t, err)

	removed, err := lib.Remove(ctx, *custom)
	require.NoError(t, err)
	assert.Equal(t, "My Notes", removed.Title, "server returns pre-deletion snapshot")

	local, err := lib.Get(ctx, "/works/OL1W")
	require.NoError(t, err)
	removed, err = lib.Remove(ctx, *local)
	require.NoError(t, err)
	assert.Equal(t, "Dune", removed.Title)

	assert.Empty(t, lib.GetAll(ctx).Entries)
}

func TestGetMissing(t *testing.T) {
	lib := newTestLibrary(t)

	_, err := lib.Get(context.Background(), "/works/OL404W")
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	lib := newTestLibrary(t)

	_, err := lib.CreateCustom(context.Background(), model.CreateBookRequest{Title: "  "})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeServerError, apiErr.Type)
	assert.Equal(t, "Title is required", apiErr.Message)
}

func TestNetworkErrorType(t *testing.T) {
	lib := newOfflineLibrary(t)

	_, err := lib.CreateCustom(context.Background(), model.CreateBookRequest{Title: "Dune"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeNetwork, apiErr.Type)
}
