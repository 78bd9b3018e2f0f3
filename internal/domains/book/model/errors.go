package model

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"booklibrary-backend/internal/shared/response"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrNoValidFields    = errors.New("no valid fields to update")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidCoverType = errors.New("cover must be JPEG or PNG")
	ErrCoverTooLarge    = errors.New("cover image exceeds maximum size (5MB)")
)

var bookErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrBookNotFound:     {http.StatusNotFound, "Book not found"},
	ErrTitleRequired:    {http.StatusBadRequest, "Title is required"},
	ErrNoValidFields:    {http.StatusBadRequest, "No valid fields to update"},
	ErrInvalidStatus:    {http.StatusBadRequest, "Invalid status"},
	ErrInvalidCoverType: {http.StatusBadRequest, "Cover must be a JPEG or PNG image"},
	ErrCoverTooLarge:    {http.StatusBadRequest, "Cover image exceeds maximum size (5MB)"},
}

// HandleBookError writes the HTTP response for a failed operation.
// Returns false when err is nil so handlers can use it as a guard.
// Unknown errors become a generic 500; the detail stays in the logs.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, mapped := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, mapped.Status, mapped.Message)
			return true
		}
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.BadRequest(c, verrs.Error())
		return true
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("[Handler] Book operation failed")
	response.InternalServerError(c, "Internal server error")
	return true
}
