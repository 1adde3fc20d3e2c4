package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/janmeyer/memora/app/models"
	"github.com/janmeyer/memora/app/repository"
	"github.com/janmeyer/memora/internal/pkg/googleauth"
	"github.com/janmeyer/memora/internal/pkg/photoslibrary"
	"github.com/janmeyer/memora/internal/pkg/usercontext"
)

// Syncer runs one bounded sync pass for a user.
type Syncer interface {
	Sync(ctx context.Context, user *models.User) (int, error)
}

// PhotoController exposes the sync trigger and the photo listing. Both sit
// behind the session middleware, so a user is always on the request context.
type PhotoController struct {
	engine Syncer
	photos repository.PhotoRepository
}

func NewPhotoController(engine Syncer, photos repository.PhotoRepository) *PhotoController {
	return &PhotoController{
		engine: engine,
		photos: photos,
	}
}

// HandleSync triggers an inline sync of the caller's Google Photos.
func (pc *PhotoController) HandleSync(c *fiber.Ctx) error {
	user := usercontext.CurrentUser(c)

	count, err := pc.engine.Sync(c.Context(), user)
	if err != nil {
		if errors.Is(err, googleauth.ErrMissingCredential) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "missing_credential",
				"message": "no google refresh token on file, please login again",
			})
		}
		if errors.Is(err, googleauth.ErrUpstreamAuth) {
			return badRequest(c, "google rejected the stored credentials, please login again")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "sync successful",
		"synced_photos": count,
	})
}

// HandleList returns the caller's synced photos, capped at ?limit= (default
// one provider page). Order follows insertion, not capture time.
func (pc *PhotoController) HandleList(c *fiber.Ctx) error {
	user := usercontext.CurrentUser(c)

	limit := c.QueryInt("limit", photoslibrary.PageSize)
	if limit <= 0 {
		limit = photoslibrary.PageSize
	}

	photos, err := pc.photos.GetByUserID(user.ID, limit)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(photos)
}
