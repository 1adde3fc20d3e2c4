// Package photosync reconciles a user's remote Google Photos library with
// the local photo table: refresh the access token, pull one page of media
// items, drop videos and known ids, insert the rest in a single transaction.
package photosync

import (
	"context"
	"fmt"

	"github.com/janmeyer/memora/app/models"
	"github.com/janmeyer/memora/app/repository"
	"github.com/janmeyer/memora/internal/pkg/photoslibrary"
)

// thumbnailSuffix is appended to a media item's base URL to request a fixed
// render size from Google's CDN.
const thumbnailSuffix = "=w512-h512"

// TokenRefresher mints an access token from a stored refresh token.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// MediaLister fetches the newest page of the user's media items.
type MediaLister interface {
	ListRecent(ctx context.Context, accessToken string) ([]photoslibrary.MediaItem, error)
}

// Engine performs one bounded sync pass per call. Two concurrent passes for
// the same user can race past the dedup check; the unique index on the media
// id then fails one of them instead of producing a duplicate.
type Engine struct {
	tokens  TokenRefresher
	library MediaLister
	photos  repository.PhotoRepository
}

// NewEngine wires the sync engine from its collaborators.
func NewEngine(tokens TokenRefresher, library MediaLister, photos repository.PhotoRepository) *Engine {
	return &Engine{
		tokens:  tokens,
		library: library,
		photos:  photos,
	}
}

// Sync ingests the newest provider page for the given user and returns the
// number of newly created photo rows. Token errors propagate unchanged so
// the caller can tell "needs re-login" from a transient upstream failure.
// Creation time and geo stay unset in this pass.
func (e *Engine) Sync(ctx context.Context, user *models.User) (int, error) {
	accessToken, err := e.tokens.Refresh(ctx, user.GoogleRefreshToken)
	if err != nil {
		return 0, err
	}

	items, err := e.library.ListRecent(ctx, accessToken)
	if err != nil {
		return 0, err
	}

	var staged []models.Photo
	for _, item := range items {
		if !item.IsPhoto() {
			continue
		}

		exists, err := e.photos.ExistsByGoogleMediaID(item.ID)
		if err != nil {
			return 0, fmt.Errorf("dedup lookup for %s: %w", item.ID, err)
		}
		if exists {
			continue
		}

		staged = append(staged, models.Photo{
			UserID:        user.ID,
			GoogleMediaID: item.ID,
			ThumbnailURL:  item.BaseURL + thumbnailSuffix,
		})
	}

	if err := e.photos.CreateBatch(staged); err != nil {
		return 0, fmt.Errorf("persist synced photos: %w", err)
	}
	return len(staged), nil
}
