package library

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"booklibrary-backend/internal/domains/book/model"
	"booklibrary-backend/internal/domains/catalog"
)

// Library presents the unified "all books" view: custom records fetched
// from the API merged with externally-sourced books tracked in the local
// cache file. Custom data requires the server; external data keeps
// working offline.
type Library struct {
	store *FileStore
	api   *APIClient
}

func New(store *FileStore, api *APIClient) *Library {
	return &Library{
		store: store,
		api:   api,
	}
}

// Result reports an operation that can be rejected without being an error
// (e.g. adding a duplicate).
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AddExternal tracks an Open Library book locally. A duplicate id is
// rejected, not an error.
func (l *Library) AddExternal(book catalog.Book, status string) (Result, error) {
	if status == "" {
		status = model.StatusWantToRead
	}
	if !model.IsValidStatus(status) {
		return Result{}, model.ErrInvalidStatus
	}

	var rejected bool
	err := l.store.Mutate(func(entries []Entry) ([]Entry, error) {
		for _, e := range entries {
			if e.ID == book.ID {
				rejected = true
				return entries, nil
			}
		}

		entry := Entry{
			ID:          book.ID,
			Title:       book.Title,
			Authors:     model.NormalizeAuthors(book.Authors),
			PublishYear: book.PublishYear,
			CoverURL:    book.CoverURL,
			Status:      status,
			Origin:      OriginLocal,
			AddedDate:   time.Now().UTC(),
		}
		return append(entries, entry), nil
	})
	if err != nil {
		return Result{}, err
	}

	if rejected {
		return Result{Success: false, Message: "Book already in library"}, nil
	}
	return Result{Success: true}, nil
}

// GetAll merges server-owned custom records with the local cache.
// When the server is unreachable the custom set is treated as empty —
// never synthesized from stale local data — and the snapshot is marked
// degraded so the caller can surface the outage.
func (l *Library) GetAll(ctx context.Context) *Snapshot {
	snapshot := &Snapshot{}

	custom, err := l.api.ListCustomBooks(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("[Library] Custom books unavailable, serving local entries only")
		snapshot.Degraded = true
	} else {
		for i := range custom {
			snapshot.Entries = append(snapshot.Entries, entryFromBook(&custom[i]))
		}
	}

	for _, e := range l.store.Load() {
		if e.Origin == OriginServer {
			// Defensive: saves prune these, but never trust the blob.
			continue
		}
		snapshot.Entries = append(snapshot.Entries, e)
	}

	return snapshot
}

// Get finds one entry by id, checking the server first for custom books.
func (l *Library) Get(ctx context.Context, id string) (*Entry, error) {
	snapshot := l.GetAll(ctx)
	for i := range snapshot.Entries {
		if snapshot.Entries[i].ID == id {
			return &snapshot.Entries[i], nil
		}
	}
	return nil, model.ErrBookNotFound
}

// Update routes by the entry's origin tag: server entries go through the
// API, local entries mutate the cache blob directly.
func (l *Library) Update(ctx context.Context, entry Entry, req model.UpdateBookRequest) (*Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if entry.Origin == OriginServer {
		updated, err := l.api.UpdateCustomBook(ctx, entry.ID, req)
		if err != nil {
			return nil, err
		}
		result := entryFromBook(updated)
		return &result, nil
	}

	var updated *Entry
	err := l.store.Mutate(func(entries []Entry) ([]Entry, error) {
		for i := range entries {
			if entries[i].ID != entry.ID {
				continue
			}
			applyToEntry(&entries[i], req)
			clone := entries[i]
			updated = &clone
			return entries, nil
		}
		return nil, model.ErrBookNotFound
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Remove deletes the entry from whichever side owns it. For server
// entries the pre-deletion snapshot comes back from the API.
func (l *Library) Remove(ctx context.Context, entry Entry) (*Entry, error) {
	if entry.Origin == OriginServer {
		deleted, err := l.api.DeleteCustomBook(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		result := entryFromBook(deleted)
		return &result, nil
	}

	var removed *Entry
	err := l.store.Mutate(func(entries []Entry) ([]Entry, error) {
		kept := make([]Entry, 0, len(entries))
		for i := range entries {
			if entries[i].ID == entry.ID {
				clone := entries[i]
				removed = &clone
				continue
			}
			kept = append(kept, entries[i])
		}
		if removed == nil {
			return nil, model.ErrBookNotFound
		}
		return kept, nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

// CreateCustom creates a custom book on the server. Nothing is written to
// the local cache: server-owned records are fetched on demand.
func (l *Library) CreateCustom(ctx context.Context, req model.CreateBookRequest) (*Entry, error) {
	book, err := l.api.CreateCustomBook(ctx, req)
	if err != nil {
		return nil, err
	}

	entry := entryFromBook(book)
	return &entry, nil
}

func entryFromBook(b *model.Book) Entry {
	updated := b.UpdatedDate
	return Entry{
		ID:          b.ID,
		Title:       b.Title,
		Authors:     b.Authors,
		PublishYear: b.PublishYear,
		CoverURL:    b.CoverURL,
		Status:      b.Status,
		Origin:      OriginServer,
		AddedDate:   b.CreatedDate,
		UpdatedDate: &updated,
	}
}

func applyToEntry(e *Entry, req model.UpdateBookRequest) {
	now := time.Now().UTC()

	if req.Title.Set {
		e.Title = req.Title.Value
	}
	if req.Authors.Set {
		e.Authors = model.NormalizeAuthors(req.Authors.Value)
	}
	if req.PublishYear.Set {
		if req.PublishYear.Null {
			e.PublishYear = nil
		} else {
			year := req.PublishYear.Value
			e.PublishYear = &year
		}
	}
	if req.CoverURL.Set {
		if req.CoverURL.Null {
			e.CoverURL = nil
		} else {
			u := req.CoverURL.Value
			e.CoverURL = &u
		}
	}
	if req.Status.Set {
		// First transition into "read" stamps the completion date.
		if req.Status.Value == model.StatusRead && e.Status != model.StatusRead {
			e.CompletedDate = &now
		}
		e.Status = req.Status.Value
	}

	e.UpdatedDate = &now
}
