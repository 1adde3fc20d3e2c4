package controllers

import (
	"context"

	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/janmeyer/memora/app/models"
	"github.com/janmeyer/memora/internal/pkg/googleauth"
)

// fakeUserRepo is an in-memory UserRepository for handler tests.
type fakeUserRepo struct {
	nextID     uint
	byID       map[uint]models.User
	byGoogleID map[string]uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       map[uint]models.User{},
		byGoogleID: map[string]uint{},
	}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.byID[user.ID] = *user
	f.byGoogleID[user.GoogleID] = user.ID
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByGoogleID(googleID string) (*models.User, error) {
	id, ok := f.byGoogleID[googleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.GetByID(id)
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.byID[user.ID] = *user
	f.byGoogleID[user.GoogleID] = user.ID
	return nil
}

func (f *fakeUserRepo) Count() (int64, error) {
	return int64(len(f.byID)), nil
}

// fakeOAuth scripts the Google side of the login flow.
type fakeOAuth struct {
	token       *oauth2.Token
	exchangeErr error
	info        *googleauth.UserInfo
	infoErr     error
}

func (f *fakeOAuth) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/v2/auth?access_type=offline&prompt=consent&state=" + state
}

func (f *fakeOAuth) ExchangeCode(_ context.Context, _ string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.token, nil
}

func (f *fakeOAuth) FetchUserInfo(_ context.Context, _ string) (*googleauth.UserInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.info, nil
}

// fakeSyncer records the sync invocation and returns a scripted result.
type fakeSyncer struct {
	count    int
	err      error
	lastUser *models.User
}

func (f *fakeSyncer) Sync(_ context.Context, user *models.User) (int, error) {
	f.lastUser = user
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

// fakePhotoRepo is a minimal in-memory PhotoRepository.
type fakePhotoRepo struct {
	photos []models.Photo
}

func (f *fakePhotoRepo) Create(photo *models.Photo) error {
	f.photos = append(f.photos, *photo)
	return nil
}

func (f *fakePhotoRepo) CreateBatch(photos []models.Photo) error {
	f.photos = append(f.photos, photos...)
	return nil
}

func (f *fakePhotoRepo) GetByUserID(userID uint, limit int) ([]models.Photo, error) {
	var out []models.Photo
	for _, p := range f.photos {
		if p.UserID == userID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePhotoRepo) ExistsByGoogleMediaID(mediaID string) (bool, error) {
	for _, p := range f.photos {
		if p.GoogleMediaID == mediaID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePhotoRepo) CountByUserID(userID uint) (int64, error) {
	photos, _ := f.GetByUserID(userID, len(f.photos))
	return int64(len(photos)), nil
}

func (f *fakePhotoRepo) Count() (int64, error) {
	return int64(len(f.photos)), nil
}
