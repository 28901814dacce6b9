package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nookcoder/library-console/internal/authapi"
	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned when there is no token to send.
var ErrNotAuthenticated = errors.New("catalog: not authenticated")

// Session is what the client needs from the session store.
type Session interface {
	Token() (string, bool)
	Logout()
}

// Client fetches catalog, loan and user resources on behalf of the current
// session. Bodies are returned as received.
type Client struct {
	baseURL string
	http    *http.Client
	session Session
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, session Session, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session,
		logger:  logger.Named("catalog"),
	}
}

func (c *Client) Books(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/api/books")
}

func (c *Client) Book(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, "/api/books/"+url.PathEscape(id))
}

func (c *Client) Loans(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/api/loans")
}

func (c *Client) Users(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/api/users")
}

func (c *Client) User(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, "/api/users/"+url.PathEscape(id))
}

func (c *Client) UserLoans(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, "/api/users/"+url.PathEscape(id)+"/loans")
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	token, ok := c.session.Token()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// the API no longer accepts this token
		c.logger.Info("token rejected, logging out", zap.String("path", path))
		c.session.Logout()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &authapi.APIError{}
		if json.Unmarshal(body, apiErr) != nil {
			apiErr = &authapi.APIError{Reason: strings.TrimSpace(string(body))}
		}
		apiErr.Status = resp.StatusCode
		return nil, apiErr
	}
	return json.RawMessage(body), nil
}
