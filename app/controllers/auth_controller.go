package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/janmeyer/memora/app/models"
	"github.com/janmeyer/memora/app/repository"
	"github.com/janmeyer/memora/internal/pkg/googleauth"
	"github.com/janmeyer/memora/internal/pkg/session"
)

const stateCookie = "oauth_state"

// OAuthClient is the part of googleauth the auth flow needs.
type OAuthClient interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	FetchUserInfo(ctx context.Context, accessToken string) (*googleauth.UserInfo, error)
}

// AuthController owns the Google login flow: redirect out, exchange the
// callback code, upsert the user and mint a first-party session token.
type AuthController struct {
	oauth    OAuthClient
	users    repository.UserRepository
	sessions *session.Issuer
}

func NewAuthController(oauth OAuthClient, users repository.UserRepository, sessions *session.Issuer) *AuthController {
	return &AuthController{
		oauth:    oauth,
		users:    users,
		sessions: sessions,
	}
}

// HandleLogin redirects the caller to Google's authorization page. The state
// nonce round-trips through a short-lived cookie.
func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect(ac.oauth.AuthCodeURL(state), fiber.StatusFound)
}

// HandleCallback finishes the OAuth flow. Repeat logins reuse the existing
// user row; email and name are refreshed from the provider profile, and the
// stored refresh token survives token responses that omit one.
func (ac *AuthController) HandleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return badRequest(c, "missing authorization code")
	}
	if state := c.Query("state"); state == "" || state != c.Cookies(stateCookie) {
		return badRequest(c, "oauth state mismatch")
	}
	c.ClearCookie(stateCookie)

	token, err := ac.oauth.ExchangeCode(c.Context(), code)
	if err != nil {
		if errors.Is(err, googleauth.ErrUpstreamAuth) {
			return badRequest(c, "failed to exchange token with google")
		}
		return serverError(c, err)
	}

	info, err := ac.oauth.FetchUserInfo(c.Context(), token.AccessToken)
	if err != nil {
		if errors.Is(err, googleauth.ErrUpstreamAuth) {
			return badRequest(c, "failed to fetch user info")
		}
		return serverError(c, err)
	}

	user, err := ac.upsertUser(info, token.RefreshToken)
	if err != nil {
		return serverError(c, err)
	}

	sessionToken, err := ac.sessions.Issue(user.ID)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "login successful",
		"user":          user,
		"session_token": sessionToken,
	})
}

func (ac *AuthController) upsertUser(info *googleauth.UserInfo, refreshToken string) (*models.User, error) {
	user, err := ac.users.GetByGoogleID(info.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			GoogleID:           info.ID,
			Email:              info.Email,
			Name:               info.Name,
			GoogleRefreshToken: refreshToken,
		}
		if err := user.Validate(); err != nil {
			return nil, err
		}
		if err := ac.users.Create(user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	user.Email = info.Email
	user.Name = info.Name
	if refreshToken != "" {
		user.GoogleRefreshToken = refreshToken
	}
	if err := ac.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
