package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
	refreshPath  = "/api/auth/refresh"
)

// Client talks to the authentication endpoints of the library API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Named("authapi"),
	}
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*Credential, error) {
	return c.post(ctx, loginPath, req)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Credential, error) {
	return c.post(ctx, registerPath, req)
}

func (c *Client) Refresh(ctx context.Context, token string) (*Credential, error) {
	return c.post(ctx, refreshPath, RefreshRequest{Token: token})
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Credential, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(zap.String("path", path), zap.String("request_id", requestID))

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("auth request failed", zap.Error(err))
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{}
		if len(data) == 0 || json.Unmarshal(data, apiErr) != nil {
			apiErr = &APIError{Reason: strings.TrimSpace(string(data))}
		}
		apiErr.Status = resp.StatusCode
		log.Info("auth request rejected", zap.Int("status", resp.StatusCode))
		return nil, apiErr
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	if cred.Token == "" {
		return nil, fmt.Errorf("decode %s response: empty token", path)
	}
	log.Debug("auth request succeeded", zap.Time("expires_at", cred.ExpiresAt))
	return &cred, nil
}
