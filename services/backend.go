package services

import (
	"context"
	"errors"

	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/shared"
)

const BACKEND_SVC = "backend_svc"

var (
	ErrUnauthenticated    = shared.ErrUnauthenticated
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNotFound           = errors.New("not found")
)

// Backend is the hosted backend the dashboard reads identity and entities
// from. Identity failures are reported as ErrUnauthenticated, transport and
// server failures as ErrBackendUnavailable.
type Backend interface {
	Me(ctx context.Context, token string) (*dto.CurrentUser, error)
	UpdateMe(ctx context.Context, token string, patch dto.UpdateProfileRequest) (*dto.CurrentUser, error)
	Logout(ctx context.Context, token string) error

	FilterProgress(ctx context.Context, email string) ([]model.UserProgress, error)
	// CreateProgress may hand back a record another request created for the
	// same email, or fail on the conflict; it never stores a second one
	// where the store enforces one record per email.
	CreateProgress(ctx context.Context, record *model.UserProgress) (*model.UserProgress, error)
	// UpdateProgress writes only the patched columns of record id.
	UpdateProgress(ctx context.Context, id string, patch model.ProgressPatch) error

	ListResources(ctx context.Context) ([]model.Resource, error)
}
