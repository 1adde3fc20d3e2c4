// Package googleauth wraps the Google OAuth token endpoint: authorization
// URL construction, code exchange, refresh-token exchange and the userinfo
// profile call. No call is retried; a single upstream failure is surfaced
// immediately.
package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/janmeyer/memora/internal/pkg/env"
)

var (
	// ErrUpstreamAuth means Google rejected a code or token. Not retryable;
	// the caller has to surface it (usually as 400).
	ErrUpstreamAuth = errors.New("google rejected the credential")
	// ErrMissingCredential means no refresh token is on file for the user;
	// the only fix is a fresh login with consent.
	ErrMissingCredential = errors.New("no google refresh token on file")
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// Scopes cover basic profile plus read access to the Photos library.
var scopes = []string{
	"openid",
	"email",
	"profile",
	"https://www.googleapis.com/auth/photoslibrary.readonly",
}

// UserInfo is the subset of the Google profile this service stores.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Client talks to Google's OAuth endpoints on behalf of this service.
type Client struct {
	cfg         *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewClient builds a client from the GOOGLE_* environment variables.
func NewClient() *Client {
	return &Client{
		cfg: &oauth2.Config{
			ClientID:     env.GetEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: env.GetEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  env.GetEnv("GOOGLE_REDIRECT_URI", "http://localhost:8000/auth/callback"),
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		userInfoURL: userInfoEndpoint,
		httpClient:  http.DefaultClient,
	}
}

// NewClientForEndpoints is used by tests to point the client at fake servers.
func NewClientForEndpoints(endpoint oauth2.Endpoint, userInfoURL string) *Client {
	c := NewClient()
	c.cfg.Endpoint = endpoint
	c.userInfoURL = userInfoURL
	return c
}

// AuthCodeURL returns the Google authorization URL. Offline access plus
// forced consent guarantee a refresh token even on repeat logins.
func (c *Client) AuthCodeURL(state string) string {
	return c.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode trades an authorization code for tokens. The refresh token
// may be empty when Google decides not to reissue one.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.cfg.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("%w: code exchange failed: %v", ErrUpstreamAuth, err)
		}
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	return token, nil
}

// Refresh mints a fresh access token from the stored refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrMissingCredential
	}

	ts := c.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := ts.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", fmt.Errorf("%w: refresh rejected: %v", ErrUpstreamAuth, err)
		}
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	return token.AccessToken, nil
}

// FetchUserInfo loads the Google profile for the given access token.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: userinfo returned %d: %s", ErrUpstreamAuth, resp.StatusCode, body)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &info, nil
}
