// Package gateway implements the delegated auth gateway: credential exchange
// is forwarded to the movies API over HTTP instead of reading the stores
// directly. Password credentials travel on the HTTP Basic header; provider
// identities travel as a JSON assertion.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUpstreamUnauthorized is returned when the upstream auth service rejects
// the exchange or answers with an unusable body.
var ErrUpstreamUnauthorized = errors.New("upstream rejected credentials")

// RemoteUser is the redacted user view returned by the upstream API.
type RemoteUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the authenticated principal re-packaged from the upstream
// response.
type Session struct {
	Token string     `json:"token"`
	User  RemoteUser `json:"user"`
}

// Client calls the upstream auth service. Every call carries the gateway's
// API key token and is bounded by the configured timeout.
type Client struct {
	baseURL     string
	apiKeyToken string
	http        *http.Client
}

// NewClient creates an upstream auth client.
func NewClient(baseURL, apiKeyToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKeyToken: apiKeyToken,
		http:        &http.Client{Timeout: timeout},
	}
}

// SignIn exchanges an email/password pair for an upstream session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"apiKeyToken": c.apiKeyToken})
	if err != nil {
		return nil, fmt.Errorf("encoding sign-in body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/sign-in", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building sign-in request: %w", err)
	}
	req.SetBasicAuth(email, password)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// SignProvider forwards a provider-asserted identity for an upstream session.
func (c *Client) SignProvider(ctx context.Context, name, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"apiKeyToken": c.apiKeyToken,
		"name":        name,
		"email":       email,
		"password":    password,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding sign-provider body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/sign-provider", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building sign-provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// CreateUserMovie forwards a user-movie link creation under a session's
// bearer token and returns the created link id.
func (c *Client) CreateUserMovie(ctx context.Context, bearer, userID, movieID string) (string, error) {
	body, err := json.Marshal(map[string]string{"userId": userID, "movieId": movieID})
	if err != nil {
		return "", fmt.Errorf("encoding user-movie body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user-movies", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building user-movie request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling upstream user-movies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUpstreamUnauthorized
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upstream user-movies returned status %d", resp.StatusCode)
	}

	var out struct {
		Data string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding upstream user-movie response: %w", err)
	}

	return out.Data, nil
}

// DeleteUserMovie removes a user-movie link under a session's bearer token.
func (c *Client) DeleteUserMovie(ctx context.Context, bearer, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/user-movies/"+id, nil)
	if err != nil {
		return fmt.Errorf("building user-movie delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling upstream user-movies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUpstreamUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream user-movies returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) do(req *http.Request) (*Session, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling upstream auth: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUpstreamUnauthorized
	}

	var s Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, ErrUpstreamUnauthorized
	}
	if s.Token == "" {
		return nil, ErrUpstreamUnauthorized
	}

	return &s, nil
}
