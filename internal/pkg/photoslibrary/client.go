// Package photoslibrary is a minimal read-only client for the Google Photos
// Library API. The service only ever asks for the newest page of media
// items.
package photoslibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/janmeyer/memora/internal/pkg/googleauth"
)

const defaultBaseURL = "https://photoslibrary.googleapis.com/v1"

// PageSize bounds a single sync pass. A full-library mirror needs repeated
// sync calls; one call never walks past the first page.
const PageSize = 50

// MediaItem is a single entry from the mediaItems listing.
type MediaItem struct {
	ID            string        `json:"id"`
	BaseURL       string        `json:"baseUrl"`
	MimeType      string        `json:"mimeType"`
	MediaMetadata MediaMetadata `json:"mediaMetadata"`
}

// MediaMetadata discriminates photos from videos; exactly one of Photo and
// Video is set by the API.
type MediaMetadata struct {
	CreationTime string           `json:"creationTime"`
	Photo        *json.RawMessage `json:"photo,omitempty"`
	Video        *json.RawMessage `json:"video,omitempty"`
}

// IsPhoto reports whether the item is a still photo.
func (m *MediaItem) IsPhoto() bool {
	return m.MediaMetadata.Photo != nil
}

type listResponse struct {
	MediaItems    []MediaItem `json:"mediaItems"`
	NextPageToken string      `json:"nextPageToken"`
}

// Client fetches media items with a caller-supplied access token.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client against the production API.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
}

// NewClientForBaseURL is used by tests to point at a fake server.
func NewClientForBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// ListRecent returns the provider's newest page of media items,
// most-recent-first as Google orders them.
func (c *Client) ListRecent(ctx context.Context, accessToken string) ([]MediaItem, error) {
	url := c.baseURL + "/mediaItems?pageSize=" + strconv.Itoa(PageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photos library request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: photos library returned %d: %s",
			googleauth.ErrUpstreamAuth, resp.StatusCode, body)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode media items: %w", err)
	}
	return list.MediaItems, nil
}
