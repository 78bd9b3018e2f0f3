package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBookRequest - POST /custom-books body.
type CreateBookRequest struct {
	Title       string     `json:"title"`
	Authors     AuthorList `json:"authors"`
	PublishYear *int       `json:"publishYear"`
	Genre       *string    `json:"genre"`
	Description *string    `json:"description"`
	CoverURL    *string    `json:"coverUrl"`
	Status      string     `json:"status"`
}

func (r CreateBookRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	if r.Status != "" && !IsValidStatus(r.Status) {
		return ErrInvalidStatus
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.PublishYear, validation.Min(0), validation.Max(2100)),
	)
}

// ToBook builds the normalized record from a validated request.
// Timestamps and id are assigned by the service.
func (r CreateBookRequest) ToBook() *Book {
	status := r.Status
	if status == "" {
		status = StatusWantToRead
	}

	return &Book{
		Title:       strings.TrimSpace(r.Title),
		Authors:     NormalizeAuthors(r.Authors),
		PublishYear: r.PublishYear,
		Genre:       trimPtr(r.Genre),
		Description: trimPtr(r.Description),
		CoverURL:    trimPtr(r.CoverURL),
		Status:      status,
		IsCustom:    true,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ListBooksResponse - GET /custom-books payload.
type ListBooksResponse struct {
	Books []Book `json:"books"`
	Count int    `json:"count"`
}

// BookResponse - single-record payload.
type BookResponse struct {
	Book *Book `json:"book"`
}
