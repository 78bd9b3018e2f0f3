package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"booklibrary-backend/internal/domains/book/model"
	"booklibrary-backend/internal/domains/book/service"
	"booklibrary-backend/internal/shared/response"
)

type Handler struct {
	service *service.BookService
}

func NewHandler(service *service.BookService) *Handler {
	return &Handler{service: service}
}

// GetCustomBooks - GET /custom-books
func (h *Handler) GetCustomBooks(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, model.ListBooksResponse{
		Books: books,
		Count: len(books),
	})
}

// CreateCustomBook - POST /custom-books
func (h *Handler) CreateCustomBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	book, err := h.service.Create(c.Request.Context(), req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, model.BookResponse{Book: book})
}

// GetCustomBook - GET /custom-books/:id
func (h *Handler) GetCustomBook(c *gin.Context) {
	book, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, model.BookResponse{Book: book})
}

// UpdateCustomBook - PUT /custom-books/:id
func (h *Handler) UpdateCustomBook(c *gin.Context) {
	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	book, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, model.BookResponse{Book: book})
}

// DeleteCustomBook - DELETE /custom-books/:id
// Returns the pre-deletion snapshot.
func (h *Handler) DeleteCustomBook(c *gin.Context) {
	book, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, model.BookResponse{Book: book})
}

// UploadCover - PUT /custom-books/:id/cover
// Multipart upload, field name "cover".
func (h *Handler) UploadCover(c *gin.Context) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "Cover file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Cover file is unreadable")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Cover file is unreadable")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	book, err := h.service.UploadCover(c.Request.Context(), c.Param("id"), data, contentType)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, model.BookResponse{Book: book})
}

// ExportCustomBooks - GET /custom-books/export
// Streams an xlsx workbook of all custom books.
func (h *Handler) ExportCustomBooks(c *gin.Context) {
	f, err := h.service.Export(c.Request.Context())
	if model.HandleBookError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="custom-books.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		// Headers are already gone; nothing better to do than log.
		_ = c.Error(err)
	}
}
