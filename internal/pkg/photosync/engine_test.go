package photosync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janmeyer/memora/app/models"
	"github.com/janmeyer/memora/internal/pkg/googleauth"
	"github.com/janmeyer/memora/internal/pkg/photoslibrary"
)

type fakeRefresher struct {
	accessToken string
	err         error
}

func (f *fakeRefresher) Refresh(_ context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", googleauth.ErrMissingCredential
	}
	if f.err != nil {
		return "", f.err
	}
	return f.accessToken, nil
}

type fakeLister struct {
	items []photoslibrary.MediaItem
	err   error
}

func (f *fakeLister) ListRecent(_ context.Context, _ string) ([]photoslibrary.MediaItem, error) {
	return f.items, f.err
}

// fakePhotoRepo mimics the unique-media-id table with a map.
type fakePhotoRepo struct {
	byMediaID map[string]models.Photo
	batchErr  error
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{byMediaID: map[string]models.Photo{}}
}

func (f *fakePhotoRepo) Create(photo *models.Photo) error {
	f.byMediaID[photo.GoogleMediaID] = *photo
	return nil
}

func (f *fakePhotoRepo) CreateBatch(photos []models.Photo) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, p := range photos {
		f.byMediaID[p.GoogleMediaID] = p
	}
	return nil
}

func (f *fakePhotoRepo) GetByUserID(userID uint, limit int) ([]models.Photo, error) {
	var out []models.Photo
	for _, p := range f.byMediaID {
		if p.UserID == userID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePhotoRepo) ExistsByGoogleMediaID(mediaID string) (bool, error) {
	_, ok := f.byMediaID[mediaID]
	return ok, nil
}

func (f *fakePhotoRepo) CountByUserID(userID uint) (int64, error) {
	count, _ := f.GetByUserID(userID, len(f.byMediaID))
	return int64(len(count)), nil
}

func (f *fakePhotoRepo) Count() (int64, error) {
	return int64(len(f.byMediaID)), nil
}

func rawMessage(b []byte) *json.RawMessage {
	m := json.RawMessage(b)
	return &m
}

func photoItem(id string) photoslibrary.MediaItem {
	raw := []byte(`{}`)
	return photoslibrary.MediaItem{
		ID:      id,
		BaseURL: "https://lh3.example.com/" + id,
		MediaMetadata: photoslibrary.MediaMetadata{
			Photo: rawMessage(raw),
		},
	}
}

func videoItem(id string) photoslibrary.MediaItem {
	raw := []byte(`{"status":"READY"}`)
	return photoslibrary.MediaItem{
		ID:      id,
		BaseURL: "https://lh3.example.com/" + id,
		MediaMetadata: photoslibrary.MediaMetadata{
			Video: rawMessage(raw),
		},
	}
}

func TestSyncSkipsVideosAndBuildsThumbnails(t *testing.T) {
	repo := newFakePhotoRepo()
	engine := NewEngine(
		&fakeRefresher{accessToken: "at-1"},
		&fakeLister{items: []photoslibrary.MediaItem{
			photoItem("p-1"), photoItem("p-2"), videoItem("v-1"), photoItem("p-3"),
		}},
		repo,
	)

	user := &models.User{ID: 7, GoogleRefreshToken: "rt-1"}
	count, err := engine.Sync(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	total, _ := repo.Count()
	assert.EqualValues(t, 3, total)

	stored := repo.byMediaID["p-1"]
	assert.Equal(t, uint(7), stored.UserID)
	assert.Equal(t, "https://lh3.example.com/p-1=w512-h512", stored.ThumbnailURL)
	assert.Nil(t, stored.CreationTime)
	assert.Nil(t, stored.Latitude)
	assert.Nil(t, stored.Longitude)
}

func TestSyncIsIdempotent(t *testing.T) {
	repo := newFakePhotoRepo()
	lister := &fakeLister{items: []photoslibrary.MediaItem{
		photoItem("p-1"), photoItem("p-2"), photoItem("p-3"),
	}}
	engine := NewEngine(&fakeRefresher{accessToken: "at-1"}, lister, repo)
	user := &models.User{ID: 7, GoogleRefreshToken: "rt-1"}

	count, err := engine.Sync(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = engine.Sync(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	total, _ := repo.Count()
	assert.EqualValues(t, 3, total)
}

func TestSyncMissingRefreshToken(t *testing.T) {
	repo := newFakePhotoRepo()
	engine := NewEngine(
		&fakeRefresher{accessToken: "at-1"},
		&fakeLister{items: []photoslibrary.MediaItem{photoItem("p-1")}},
		repo,
	)

	user := &models.User{ID: 7}
	count, err := engine.Sync(context.Background(), user)
	assert.ErrorIs(t, err, googleauth.ErrMissingCredential)
	assert.Zero(t, count)

	total, _ := repo.Count()
	assert.Zero(t, total)
}

func TestSyncUpstreamFailureAddsNothing(t *testing.T) {
	repo := newFakePhotoRepo()
	engine := NewEngine(
		&fakeRefresher{accessToken: "at-1"},
		&fakeLister{err: googleauth.ErrUpstreamAuth},
		repo,
	)

	user := &models.User{ID: 7, GoogleRefreshToken: "rt-1"}
	count, err := engine.Sync(context.Background(), user)
	assert.ErrorIs(t, err, googleauth.ErrUpstreamAuth)
	assert.Zero(t, count)

	total, _ := repo.Count()
	assert.Zero(t, total)
}

func TestSyncAbortsOnPersistFailure(t *testing.T) {
	repo := newFakePhotoRepo()
	repo.batchErr = errors.New("connection reset")
	engine := NewEngine(
		&fakeRefresher{accessToken: "at-1"},
		&fakeLister{items: []photoslibrary.MediaItem{photoItem("p-1"), photoItem("p-2")}},
		repo,
	)

	user := &models.User{ID: 7, GoogleRefreshToken: "rt-1"}
	count, err := engine.Sync(context.Background(), user)
	require.Error(t, err)
	assert.Zero(t, count)

	total, _ := repo.Count()
	assert.Zero(t, total)
}
