package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Optional is a tri-state JSON field: absent, explicit null, or a value.
// It replaces the old "whichever keys are present" dynamic update handling,
// so "field omitted" and "field cleared" are distinguishable.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsZero lets omitzero drop unset fields entirely, so a marshalled
// request only carries the keys the caller actually set.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// UpdateBookRequest - PUT /custom-books/:id body. Any subset of fields.
// Unknown keys are ignored; a body with zero known fields is rejected.
type UpdateBookRequest struct {
	Title       Optional[string]     `json:"title,omitzero"`
	Authors     Optional[AuthorList] `json:"authors,omitzero"`
	PublishYear Optional[int]        `json:"publishYear,omitzero"`
	Genre       Optional[string]     `json:"genre,omitzero"`
	Description Optional[string]     `json:"description,omitzero"`
	CoverURL    Optional[string]     `json:"coverUrl,omitzero"`
	Status      Optional[string]     `json:"status,omitzero"`
}

func (r UpdateBookRequest) IsEmpty() bool {
	return !r.Title.Set &&
		!r.Authors.Set &&
		!r.PublishYear.Set &&
		!r.Genre.Set &&
		!r.Description.Set &&
		!r.CoverURL.Set &&
		!r.Status.Set
}

func (r UpdateBookRequest) Validate() error {
	if r.IsEmpty() {
		return ErrNoValidFields
	}

	// Title and status can be changed but never cleared.
	if r.Title.Set && (r.Title.Null || strings.TrimSpace(r.Title.Value) == "") {
		return ErrTitleRequired
	}
	if r.Status.Set && (r.Status.Null || !IsValidStatus(r.Status.Value)) {
		return ErrInvalidStatus
	}

	return nil
}

// Apply mutates b with the fields the request carries. Absent fields are
// untouched; explicit null clears the optional ones. updatedDate is always
// refreshed.
func (r UpdateBookRequest) Apply(b *Book, now time.Time) {
	if r.Title.Set {
		b.Title = strings.TrimSpace(r.Title.Value)
	}
	if r.Authors.Set {
		// null or empty collapses to the sentinel, same as Create.
		b.Authors = NormalizeAuthors(r.Authors.Value)
	}
	if r.PublishYear.Set {
		if r.PublishYear.Null {
			b.PublishYear = nil
		} else {
			year := r.PublishYear.Value
			b.PublishYear = &year
		}
	}
	if r.Genre.Set {
		b.Genre = optionalString(r.Genre)
	}
	if r.Description.Set {
		b.Description = optionalString(r.Description)
	}
	if r.CoverURL.Set {
		b.CoverURL = optionalString(r.CoverURL)
	}
	if r.Status.Set {
		b.Status = r.Status.Value
	}

	b.UpdatedDate = now
}

func optionalString(o Optional[string]) *string {
	if o.Null {
		return nil
	}
	return trimPtr(&o.Value)
}
