package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"booklibrary-backend/internal/domains/book/model"
)

const requestTimeout = 10 * time.Second

// Error type categories, so callers can branch on the kind of failure
// without parsing server text.
const (
	ErrorTypeTimeout     = "timeout"
	ErrorTypeServerError = "server_error"
	ErrorTypeNetwork     = "network_error"
	ErrorTypeUnknown     = "unknown_error"
)

// APIError is the normalized failure shape for every API call.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Status  int    `json:"status,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// APIClient talks to the custom-books endpoints. Failures are normalized
// into APIError values; no retries anywhere — every failure surfaces once.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// envelope mirrors the server's response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type booksData struct {
	Books []model.Book `json:"books"`
	Count int          `json:"count"`
}

type bookData struct {
	Book *model.Book `json:"book"`
}

func (c *APIClient) ListCustomBooks(ctx context.Context) ([]model.Book, error) {
	var data booksData
	if err := c.do(ctx, http.MethodGet, "/custom-books", nil, &data); err != nil {
		return nil, err
	}
	return data.Books, nil
}

func (c *APIClient) CreateCustomBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	var data bookData
	if err := c.do(ctx, http.MethodPost, "/custom-books", req, &data); err != nil {
		return nil, err
	}
	return data.Book, nil
}

func (c *APIClient) GetCustomBook(ctx context.Context, id string) (*model.Book, error) {
	var data bookData
	if err := c.do(ctx, http.MethodGet, "/custom-books/"+url.PathEscape(id), nil, &data); err != nil {
		return nil, err
	}
	return data.Book, nil
}

func (c *APIClient) UpdateCustomBook(ctx context.Context, id string, req model.UpdateBookRequest) (*model.Book, error) {
	var data bookData
	if err := c.do(ctx, http.MethodPut, "/custom-books/"+url.PathEscape(id), req, &data); err != nil {
		return nil, err
	}
	return data.Book, nil
}

// DeleteCustomBook returns the server's pre-deletion snapshot.
func (c *APIClient) DeleteCustomBook(ctx context.Context, id string) (*model.Book, error) {
	var data bookData
	if err := c.do(ctx, http.MethodDelete, "/custom-books/"+url.PathEscape(id), nil, &data); err != nil {
		return nil, err
	}
	return data.Book, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: err.Error(), Type: ErrorTypeUnknown}
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &APIError{Message: err.Error(), Type: ErrorTypeUnknown}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return normalizeTransportError(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{
			Message: "malformed server response",
			Type:    ErrorTypeServerError,
			Status:  resp.StatusCode,
		}
	}

	if !env.Success {
		message := env.Error
		if message == "" {
			message = "Server error"
		}
		return &APIError{
			Message: message,
			Type:    ErrorTypeServerError,
			Status:  resp.StatusCode,
		}
	}

	if dest != nil {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return &APIError{
				Message: "malformed server response",
				Type:    ErrorTypeServerError,
				Status:  resp.StatusCode,
			}
		}
	}
	return nil
}

// normalizeTransportError maps transport failures onto the fixed
// {message, type} taxonomy.
func normalizeTransportError(err error) *APIError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{
			Message: "Request timeout - server is taking too long to respond",
			Type:    ErrorTypeTimeout,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &APIError{
			Message: "Network error - please check your connection",
			Type:    ErrorTypeNetwork,
		}
	}

	return &APIError{
		Message: err.Error(),
		Type:    ErrorTypeUnknown,
	}
}
