package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog/log"

	"booklibrary-backend/internal/domains/book/model"
	"booklibrary-backend/internal/domains/book/repository"
	"booklibrary-backend/pkg/cache"
)

const (
	listCacheKey      = "custom_books:list"
	detailCachePrefix = "custom_books:detail:"
	cacheTTL          = 5 * time.Minute

	maxCoverSize = 5 << 20 // 5MB
)

// CoverStorage is the slice of object storage the service needs.
type CoverStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// BookService implements the record access layer for custom books:
// validation, normalization, read-before-write mutations, caching.
type BookService struct {
	repo   repository.BookRepository
	cache  cache.Cache
	covers CoverStorage
}

func NewService(repo repository.BookRepository, cache cache.Cache, covers CoverStorage) *BookService {
	return &BookService{
		repo:   repo,
		cache:  cache,
		covers: covers,
	}
}

// List returns all custom books, newest first.
func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	var cached []model.Book
	found, err := s.cache.Get(ctx, listCacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", listCacheKey).Msg("[Service] Cache read failed")
	}
	if found {
		return cached, nil
	}

	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, listCacheKey, books, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", listCacheKey).Msg("[Service] Cache write failed")
	}

	return books, nil
}

// Create validates the request, normalizes authors, generates the id and
// persists the record. The returned record carries exactly the timestamps
// that were persisted.
func (s *BookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book := req.ToBook()
	book.ID = model.NewBookID()

	now := time.Now().UTC()
	book.CreatedDate = now
	book.UpdatedDate = now

	if err := s.repo.Insert(ctx, book); err != nil {
		return nil, err
	}

	s.invalidate(ctx, book.ID)
	return book, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*model.Book, error) {
	cacheKey := detailCachePrefix + id

	var cached model.Book
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[Service] Cache read failed")
	}
	if found {
		return &cached, nil
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, book, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[Service] Cache write failed")
	}

	return book, nil
}

// Update applies a partial update. Only fields present in the request
// change; explicit null clears the clearable ones. The record is fetched
// first so the full row can be written back and returned.
func (s *BookService) Update(ctx context.Context, id string, req model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(book, time.Now().UTC())

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return book, nil
}

// Delete removes the record and returns its pre-deletion snapshot.
func (s *BookService) Delete(ctx context.Context, id string) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return book, nil
}

// UploadCover stores a cover image for an existing record and writes the
// resulting URL back onto it.
func (s *BookService) UploadCover(ctx context.Context, id string, data []byte, contentType string) (*model.Book, error) {
	if len(data) > maxCoverSize {
		return nil, model.ErrCoverTooLarge
	}

	ext, ok := coverExtension(contentType)
	if !ok {
		return nil, model.ErrInvalidCoverType
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := path.Join("covers", id+ext)
	url, err := s.covers.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload cover for %s: %w", id, err)
	}

	book.CoverURL = &url
	book.UpdatedDate = time.Now().UTC()

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return book, nil
}

func coverExtension(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	}
	return "", false
}

// invalidate drops the list and detail cache entries after a mutation.
func (s *BookService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, listCacheKey, detailCachePrefix+id); err != nil {
		log.Warn().Err(err).Msg("[Service] Cache invalidation failed")
	}
}
