package termsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to a gemterm server. It covers the public endpoints and
// creates Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return call[HealthResponse](ctx, c, http.MethodGet, "/livez", "", nil, http.StatusOK)
}

func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return call[HealthResponse](ctx, c, http.MethodGet, "/readyz", "", nil, http.StatusOK)
}

// Login redeems code for identity and returns the resulting session.
func (c *Client) Login(ctx context.Context, identity, code string) (*Session, error) {
	resp, err := call[LoginResponse](ctx, c, http.MethodPost, "/v1/session", "",
		LoginRequest{Identity: identity, Code: code}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return c.NewSessionFromToken(resp.AccessToken, resp.Session), nil
}

// NewSessionFromToken wraps a previously issued access token.
func (c *Client) NewSessionFromToken(accessToken string, info SessionInfo) *Session {
	return &Session{client: c, accessToken: accessToken, info: info}
}
