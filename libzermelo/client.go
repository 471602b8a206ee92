package libzermelo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the Zermelo portal API base URL. The school
	// identifier is substituted for %s.
	DefaultBaseURL = "https://%s.zportal.nl/api/v3"

	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 30 * time.Second
)

// Session is a school plus the access token that authorizes requests for it.
type Session struct {
	School      string
	AccessToken string
}

// NewSession builds a session from an already known access token.
func NewSession(school, accessToken string) Session {
	return Session{School: school, AccessToken: accessToken}
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL template.
func WithBaseURL(template string) Option {
	return func(c *Client) {
		if template != "" {
			c.baseURL = template
		}
	}
}

// WithHTTPClient sets the HTTP client used for token exchange and, wrapped
// with the session token, for API requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client talks to a school's Zermelo portal API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new portal client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SchoolURL returns the API base URL for a school.
func (c *Client) SchoolURL(school string) string {
	if !strings.Contains(c.baseURL, "%s") {
		return strings.TrimRight(c.baseURL, "/")
	}
	return strings.TrimRight(fmt.Sprintf(c.baseURL, school), "/")
}

// oauthContext returns ctx carrying the client's HTTP client for oauth2.
func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// authorized returns an HTTP client that sends the session's bearer token.
func (c *Client) authorized(ctx context.Context, session Session) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
	})
	return oauth2.NewClient(c.oauthContext(ctx), src)
}

// envelope is the wrapper every portal API response uses.
type envelope struct {
	Response struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Details string          `json:"details"`
		Data    json.RawMessage `json:"data"`
	} `json:"response"`
}

// get performs an authorized GET request and returns the response data.
func (c *Client) get(ctx context.Context, session Session, path string) (json.RawMessage, error) {
	url := c.SchoolURL(session.School) + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.authorized(ctx, session).Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && env.Response.Message != "" {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, env.Response.Message)
		}
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", decodeErr)
	}

	return env.Response.Data, nil
}
