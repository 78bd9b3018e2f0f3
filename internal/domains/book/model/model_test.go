package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookID(t *testing.T) {
	id := NewBookID()

	assert.True(t, strings.HasPrefix(id, CustomIDPrefix))

	parts := strings.Split(strings.TrimPrefix(id, CustomIDPrefix), "_")
	require.Len(t, parts, 2)
	assert.Len(t, parts[1], 9)

	// ids from the same process must not collide
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		next := NewBookID()
		assert.False(t, seen[next], "duplicate id %s", next)
		seen[next] = true
	}
}

func TestAuthorListUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  AuthorList
	}{
		{"array", `["Frank Herbert","Brian Herbert"]`, AuthorList{"Frank Herbert", "Brian Herbert"}},
		{"bare string", `"Frank Herbert"`, AuthorList{"Frank Herbert"}},
		{"empty array", `[]`, AuthorList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AuthorList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAuthors(t *testing.T) {
	assert.Equal(t, []string{UnknownAuthor}, NormalizeAuthors(nil))
	assert.Equal(t, []string{UnknownAuthor}, NormalizeAuthors([]string{"", "  "}))
	assert.Equal(t, []string{"Frank Herbert"}, NormalizeAuthors([]string{" Frank Herbert "}))
	assert.Equal(t, []string{"A", "B"}, NormalizeAuthors([]string{"A", "", "B"}))
}

func TestCreateBookRequestValidate(t *testing.T) {
	req := CreateBookRequest{Title: "   "}
	assert.ErrorIs(t, req.Validate(), ErrTitleRequired)

	req = CreateBookRequest{Title: "Dune", Status: "finished"}
	assert.ErrorIs(t, req.Validate(), ErrInvalidStatus)

	year := -5
	req = CreateBookRequest{Title: "Dune", PublishYear: &year}
	assert.Error(t, req.Validate())

	year = 1965
	req = CreateBookRequest{Title: "Dune", PublishYear: &year, Status: StatusRead}
	assert.NoError(t, req.Validate())
}

func TestCreateBookRequestToBook(t *testing.T) {
	req := CreateBookRequest{Title: "  Dune  "}
	b := req.ToBook()

	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, []string{UnknownAuthor}, b.Authors)
	assert.Equal(t, StatusWantToRead, b.Status)
	assert.True(t, b.IsCustom)
}

func TestOptionalTriState(t *testing.T) {
	var req UpdateBookRequest
	body := `{"title":"New Title","genre":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.True(t, req.Title.Set)
	assert.False(t, req.Title.Null)
	assert.Equal(t, "New Title", req.Title.Value)

	assert.True(t, req.Genre.Set)
	assert.True(t, req.Genre.Null)

	assert.False(t, req.Status.Set, "absent field must stay unset")
}

func TestUpdateBookRequestMarshalOmitsUnset(t *testing.T) {
	req := UpdateBookRequest{
		Status: Optional[string]{Set: true, Value: StatusRead},
		Genre:  Optional[string]{Set: true, Null: true},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Len(t, keys, 2)
	assert.Equal(t, `"read"`, string(keys["status"]))
	assert.Equal(t, `null`, string(keys["genre"]))
}

func TestUpdateBookRequestValidate(t *testing.T) {
	var empty UpdateBookRequest
	assert.ErrorIs(t, empty.Validate(), ErrNoValidFields)

	// unknown keys only behave like an empty body
	var unknown UpdateBookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"publisher":"Ace"}`), &unknown))
	assert.ErrorIs(t, unknown.Validate(), ErrNoValidFields)

	titleNull := UpdateBookRequest{Title: Optional[string]{Set: true, Null: true}}
	assert.ErrorIs(t, titleNull.Validate(), ErrTitleRequired)

	titleBlank := UpdateBookRequest{Title: Optional[string]{Set: true, Value: "  "}}
	assert.ErrorIs(t, titleBlank.Validate(), ErrTitleRequired)

	statusNull := UpdateBookRequest{Status: Optional[string]{Set: true, Null: true}}
	assert.ErrorIs(t, statusNull.Validate(), ErrInvalidStatus)

	ok := UpdateBookRequest{Status: Optional[string]{Set: true, Value: StatusRead}}
	assert.NoError(t, ok.Validate())
}

func TestUpdateBookRequestApply(t *testing.T) {
	year := 1965
	genre := "Science Fiction"
	book := Book{
		ID:          "custom_1_abc",
		Title:       "Dune",
		Authors:     []string{"Frank Herbert"},
		PublishYear: &year,
		Genre:       &genre,
		Status:      StatusWantToRead,
		CreatedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	req := UpdateBookRequest{
		Status:      Optional[string]{Set: true, Value: StatusRead},
		Genre:       Optional[string]{Set: true, Null: true},
		PublishYear: Optional[int]{Set: true, Null: true},
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	req.Apply(&book, now)

	assert.Equal(t, "Dune", book.Title, "absent title untouched")
	assert.Equal(t, []string{"Frank Herbert"}, book.Authors)
	assert.Equal(t, StatusRead, book.Status)
	assert.Nil(t, book.Genre, "explicit null clears genre")
	assert.Nil(t, book.PublishYear)
	assert.Equal(t, now, book.UpdatedDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), book.CreatedDate)
}
