package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"booklibrary-backend/internal/shared/response"
)

// Handler exposes the Open Library pass-through endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Search - GET /books/search?q=...&page=&limit=&sort=
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Search query is required")
		return
	}

	h.search(c, SearchParams{
		Query: query,
		Sort:  c.DefaultQuery("sort", SortRelevance),
	})
}

// SearchByTitle - GET /books/search/title?title=...
func (h *Handler) SearchByTitle(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.BadRequest(c, "Title is required")
		return
	}

	h.search(c, SearchParams{Title: title})
}

// SearchByAuthor - GET /books/search/author?author=...
func (h *Handler) SearchByAuthor(c *gin.Context) {
	author := c.Query("author")
	if author == "" {
		response.BadRequest(c, "Author is required")
		return
	}

	h.search(c, SearchParams{Author: author})
}

// SearchBySubject - GET /books/search/subject?subject=...
func (h *Handler) SearchBySubject(c *gin.Context) {
	subject := c.Query("subject")
	if subject == "" {
		response.BadRequest(c, "Subject is required")
		return
	}

	h.search(c, SearchParams{Subject: subject})
}

func (h *Handler) search(c *gin.Context, params SearchParams) {
	params.Page = intQuery(c, "page", DefaultPage)
	params.Limit = intQuery(c, "limit", DefaultLimit)

	result, err := h.service.Client().Search(c.Request.Context(), params)
	if err != nil {
		log.Error().Err(err).Msg("[Catalog] Search failed")
		response.InternalServerError(c, "Failed to search books")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetBookDetails - GET /books/details/:workId
func (h *Handler) GetBookDetails(c *gin.Context) {
	workID := c.Param("workId")
	if workID == "" {
		response.BadRequest(c, "Work ID is required")
		return
	}

	details, err := h.service.Client().WorkDetails(c.Request.Context(), workID)
	if err != nil {
		log.Error().Err(err).Str("work_id", workID).Msg("[Catalog] Details failed")
		response.InternalServerError(c, "Failed to get book details")
		return
	}

	response.Success(c, http.StatusOK, details)
}

// GetBookEditions - GET /books/details/:workId/editions
func (h *Handler) GetBookEditions(c *gin.Context) {
	workID := c.Param("workId")
	if workID == "" {
		response.BadRequest(c, "Work ID is required")
		return
	}

	editions, err := h.service.Client().WorkEditions(c.Request.Context(), workID, intQuery(c, "limit", 10))
	if err != nil {
		log.Error().Err(err).Str("work_id", workID).Msg("[Catalog] Editions failed")
		response.InternalServerError(c, "Failed to get book editions")
		return
	}

	response.Success(c, http.StatusOK, editions)
}

// GetTrendingBooks - GET /books/trending
func (h *Handler) GetTrendingBooks(c *gin.Context) {
	result, err := h.service.Trending(c.Request.Context(), intQuery(c, "limit", DefaultLimit))
	if err != nil {
		log.Error().Err(err).Msg("[Catalog] Trending failed")
		response.InternalServerError(c, "Failed to get trending books")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
