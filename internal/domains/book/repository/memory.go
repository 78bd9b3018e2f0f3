package repository

import (
	"context"
	"sort"
	"sync"

	"booklibrary-backend/internal/domains/book/model"
)

// memoryRepository keeps records in process memory. It exists so the
// service and handlers are testable without a live database.
type memoryRepository struct {
	mu    sync.RWMutex
	books map[string]model.Book
	seq   map[string]int64
	next  int64
}

func NewMemoryRepository() BookRepository {
	return &memoryRepository{
		books: make(map[string]model.Book),
		seq:   make(map[string]int64),
	}
}

func (r *memoryRepository) List(ctx context.Context) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, cloneBook(b))
	}

	// createdDate descending; insertion order breaks ties created within
	// the same millisecond.
	sort.Slice(books, func(i, j int) bool {
		if !books[i].CreatedDate.Equal(books[j].CreatedDate) {
			return books[i].CreatedDate.After(books[j].CreatedDate)
		}
		return r.seq[books[i].ID] > r.seq[books[j].ID]
	})

	return books, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}

	clone := cloneBook(b)
	return &clone, nil
}

func (r *memoryRepository) Insert(ctx context.Context, b *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.seq[b.ID] = r.next
	r.books[b.ID] = cloneBook(*b)
	return nil
}

func (r *memoryRepository) Update(ctx context.Context, b *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[b.ID]; !ok {
		return model.ErrBookNotFound
	}

	r.books[b.ID] = cloneBook(*b)
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return model.ErrBookNotFound
	}

	delete(r.books, id)
	delete(r.seq, id)
	return nil
}

func cloneBook(b model.Book) model.Book {
	clone := b
	clone.Authors = append([]string(nil), b.Authors...)
	if b.PublishYear != nil {
		year := *b.PublishYear
		clone.PublishYear = &year
	}
	clone.Genre = clonePtr(b.Genre)
	clone.Description = clonePtr(b.Description)
	clone.CoverURL = clonePtr(b.CoverURL)
	return clone
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
