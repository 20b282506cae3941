package services

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/shared"
	log "github.com/sirupsen/logrus"
)

// AuthService resolves the caller's identity through the backend. It never
// checks credentials itself.
type AuthService struct {
	appContext.DefaultService

	backend  Backend
	loginURL string
}

const AUTH_SVC = "auth_svc"

func NewAuthService(backend Backend, loginURL string) *AuthService {
	return &AuthService{backend: backend, loginURL: loginURL}
}

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *appContext.Context) error {
	svc.backend = backendFrom(ctx)

	svc.loginURL = os.Getenv("LOGIN_URL")
	if svc.loginURL == "" {
		svc.loginURL = "/login"
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	return nil
}

// LoginURL is where an unauthenticated user is sent. from is the page to
// come back to after signing in.
func (svc *AuthService) LoginURL(from string) string {
	if from == "" {
		return svc.loginURL
	}

	u, err := url.Parse(svc.loginURL)
	if err != nil {
		return svc.loginURL
	}
	q := u.Query()
	q.Set("from_url", from)
	u.RawQuery = q.Encode()
	return u.String()
}

// Authenticate resolves the bearer token in authHeader to the current user.
func (svc *AuthService) Authenticate(ctx context.Context, authHeader string) (*dto.CurrentUser, string, error) {
	token, err := ExtractTokenFromHeader(authHeader)
	if err != nil {
		return nil, "", ErrUnauthenticated
	}

	user, err := svc.backend.Me(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrUnauthenticated
		}
		return nil, "", err
	}
	return user, token, nil
}

func (svc *AuthService) Logout(ctx context.Context, token string) error {
	if err := svc.backend.Logout(ctx, token); err != nil {
		log.WithError(err).Warn("Logout failed")
		return err
	}
	return nil
}

// UpdateProfile changes the caller's display name. Failures are logged and
// surfaced, there is no retry.
func (svc *AuthService) UpdateProfile(ctx context.Context, user *dto.CurrentUser, token string, req dto.UpdateProfileRequest) (*dto.CurrentUser, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	if err := req.Validate(); err != nil {
		return nil, shared.NewValidationError(err, dto.FormatValidationErrors(err))
	}

	updated, err := svc.backend.UpdateMe(ctx, token, req)
	if err != nil {
		log.WithFields(log.Fields{
			"email": user.Email,
			"error": err,
		}).Error("Failed to update profile")

		if errors.Is(err, ErrUnauthenticated) {
			return nil, err
		}
		return nil, shared.NewBadGatewayError(err, "Failed to update profile")
	}
	return updated, nil
}
