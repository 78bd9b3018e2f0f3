package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"booklibrary-backend/internal/config"
)

const searchFields = "key,title,author_name,first_publish_year,cover_i,isbn,subject,language,edition_count,publisher"

// Client is a thin adapter over the Open Library HTTP API.
// It rate-limits itself and identifies the application via User-Agent,
// per Open Library's usage policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	userAgent  string
	limiter    *rate.Limiter
}

func NewClient(cfg config.OpenLibraryConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
		baseURL:   cfg.BaseURL,
		coversURL: cfg.CoversURL,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), 1),
	}
}

// SearchParams describes one search call. Exactly one of Query, Title,
// Author, Subject should be set; the handlers enforce that.
type SearchParams struct {
	Query   string
	Title   string
	Author  string
	Subject string
	Page    int
	Limit   int
	Sort    string
}

// searchResponse matches search.json.
type searchResponse struct {
	NumFound int `json:"num_found"`
	Start    int `json:"start"`
	Docs     []struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorNames      []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		CoverID          int      `json:"cover_i"`
		ISBN             []string `json:"isbn"`
		EditionCount     int      `json:"edition_count"`
	} `json:"docs"`
}

func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if params.Page <= 0 {
		params.Page = DefaultPage
	}
	if params.Limit <= 0 || params.Limit > MaxLimit {
		params.Limit = DefaultLimit
	}

	q := url.Values{}
	switch {
	case params.Query != "":
		q.Set("q", params.Query)
	case params.Title != "":
		q.Set("title", params.Title)
	case params.Author != "":
		q.Set("author", params.Author)
	case params.Subject != "":
		q.Set("subject", params.Subject)
	}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("limit", strconv.Itoa(params.Limit))
	q.Set("fields", searchFields)
	if params.Sort != "" && params.Sort != SortRelevance {
		q.Set("sort", params.Sort)
	}

	var res searchResponse
	if err := c.get(ctx, c.baseURL+"/search.json?"+q.Encode(), &res); err != nil {
		return nil, err
	}

	books := make([]Book, 0, len(res.Docs))
	for _, doc := range res.Docs {
		book := Book{
			ID:           doc.Key,
			Title:        doc.Title,
			Authors:      doc.AuthorNames,
			EditionCount: doc.EditionCount,
			IsCustom:     false,
		}
		if book.Authors == nil {
			book.Authors = []string{}
		}
		if doc.FirstPublishYear != 0 {
			year := doc.FirstPublishYear
			book.PublishYear = &year
		}
		if doc.CoverID != 0 {
			book.CoverURL = c.CoverURL(doc.CoverID, "M")
			book.CoverURLSmall = c.CoverURL(doc.CoverID, "S")
			book.CoverURLLarge = c.CoverURL(doc.CoverID, "L")
		}
		if len(doc.ISBN) > 0 {
			isbn := doc.ISBN[0]
			book.ISBN = &isbn
		}
		books = append(books, book)
	}

	return &SearchResult{
		Books:      books,
		TotalFound: res.NumFound,
		Start:      res.Start,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: int(math.Ceil(float64(res.NumFound) / float64(params.Limit))),
	}, nil
}

// WorkDetails returns the raw work document; this endpoint is a
// pass-through, so no reshaping happens here.
func (c *Client) WorkDetails(ctx context.Context, workID string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/works/%s.json", c.baseURL, url.PathEscape(workID))

	var raw json.RawMessage
	if err := c.get(ctx, u, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// WorkEditions returns the raw editions document for a work.
func (c *Client) WorkEditions(ctx context.Context, workID string, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = 10
	}
	u := fmt.Sprintf("%s/works/%s/editions.json?limit=%d", c.baseURL, url.PathEscape(workID), limit)

	var raw json.RawMessage
	if err := c.get(ctx, u, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Trending searches a randomly rotated popular subject. Open Library has
// no real trending endpoint, so the feed rotates through known-good
// subjects instead.
func (c *Client) Trending(ctx context.Context, limit int) (*TrendingResult, error) {
	subject := PopularSubjects[rand.Intn(len(PopularSubjects))]

	result, err := c.Search(ctx, SearchParams{Subject: subject, Limit: limit})
	if err != nil {
		return nil, err
	}

	return &TrendingResult{
		Books:   result.Books,
		Subject: subject,
	}, nil
}

// CoverURL builds a cover image URL for a cover id. size: S, M or L.
func (c *Client) CoverURL(coverID int, size string) *string {
	u := fmt.Sprintf("%s/b/id/%d-%s.jpg", c.coversURL, coverID, size)
	return &u
}

// CoverURLByISBN builds a cover image URL from an ISBN.
func (c *Client) CoverURLByISBN(isbn, size string) *string {
	u := fmt.Sprintf("%s/b/isbn/%s-%s.jpg", c.coversURL, url.PathEscape(isbn), size)
	return &u
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("open library request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("open library returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode open library response: %w", err)
	}
	return nil
}
