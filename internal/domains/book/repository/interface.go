package repository

import (
	"context"

	"booklibrary-backend/internal/domains/book/model"
)

// BookRepository is the injected store abstraction for custom books.
// Implementations: PostgreSQL (production), in-memory (tests).
//
// Callers perform read-before-write: Update and Delete assume the record
// was just fetched, so pre/post snapshots can be returned without relying
// on mutation row counts.
type BookRepository interface {
	// List returns all records ordered by createdDate descending.
	List(ctx context.Context) ([]model.Book, error)

	// GetByID returns model.ErrBookNotFound when no record matches.
	GetByID(ctx context.Context, id string) (*model.Book, error)

	Insert(ctx context.Context, b *model.Book) error

	// Update writes the full record. The service applies the patch to a
	// freshly fetched copy first, so unspecified fields keep their values.
	Update(ctx context.Context, b *model.Book) error

	Delete(ctx context.Context, id string) error
}
