package model

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Reading status lifecycle for a library book.
const (
	StatusWantToRead       = "want-to-read"
	StatusCurrentlyReading = "currently-reading"
	StatusRead             = "read"
)

// UnknownAuthor is the sentinel used when no usable author is supplied.
// The authors list is never empty.
const UnknownAuthor = "Unknown Author"

// CustomIDPrefix marks ids of records owned by this store, as opposed to
// Open Library work keys.
const CustomIDPrefix = "custom_"

// Book is a custom book record owned by the store.
// Authors are persisted as a JSON-serialized column and always expanded
// back into a list on read.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors"`
	PublishYear *int      `json:"publishYear"`
	Genre       *string   `json:"genre,omitempty"`
	Description *string   `json:"description,omitempty"`
	CoverURL    *string   `json:"coverUrl,omitempty"`
	Status      string    `json:"status"`
	IsCustom    bool      `json:"isCustom"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusWantToRead, StatusCurrentlyReading, StatusRead:
		return true
	}
	return false
}

// NewBookID generates a store-owned id: custom_<unix-millis>_<random>.
// The prefix keeps custom ids distinguishable from Open Library keys.
func NewBookID() string {
	return fmt.Sprintf("%s%d_%s", CustomIDPrefix, time.Now().UnixMilli(), randomSuffix(9))
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}

// AuthorList accepts both a single string and a list of strings in JSON,
// since clients send either form.
type AuthorList []string

func (a *AuthorList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = AuthorList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*a = AuthorList(list)
	return nil
}

// NormalizeAuthors trims and drops empty entries, falling back to the
// sentinel so the list is never empty.
func NormalizeAuthors(authors []string) []string {
	normalized := make([]string, 0, len(authors))
	for _, a := range authors {
		a = strings.TrimSpace(a)
		if a != "" {
			normalized = append(normalized, a)
		}
	}

	if len(normalized) == 0 {
		return []string{UnknownAuthor}
	}
	return normalized
}
