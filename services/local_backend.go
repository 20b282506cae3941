package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/model"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LocalBackendService serves the backend contract from Postgres with
// locally signed tokens. It is used for development and self hosting.
type LocalBackendService struct {
	appContext.DefaultService

	pgSvc    *PostgresService
	jwtSvc   *JWTService
	redisSvc *RedisService
}

func (svc LocalBackendService) Id() string {
	return BACKEND_SVC
}

func (svc *LocalBackendService) Configure(ctx *appContext.Context) error {
	svc.pgSvc = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = ctx.Service(JWT_SVC).(*JWTService)
	svc.redisSvc = ctx.Service(REDIS_SVC).(*RedisService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *LocalBackendService) Start() error {
	log.Info("Local backend enabled, identity is served from postgres")
	return nil
}

func (svc *LocalBackendService) Me(ctx context.Context, token string) (*dto.CurrentUser, error) {
	claims, err := svc.jwtSvc.VerifyJWTToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	revoked, err := svc.redisSvc.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if revoked {
		return nil, ErrUnauthenticated
	}

	user, err := svc.pgSvc.Users().GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return toCurrentUser(user), nil
}

func (svc *LocalBackendService) UpdateMe(ctx context.Context, token string, patch dto.UpdateProfileRequest) (*dto.CurrentUser, error) {
	me, err := svc.Me(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := svc.pgSvc.Users().UpdateFullName(ctx, me.ID, strings.TrimSpace(patch.FullName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return toCurrentUser(user), nil
}

func (svc *LocalBackendService) Logout(ctx context.Context, token string) error {
	ttl := svc.jwtSvc.RemainingTTL(token)
	if ttl <= 0 {
		return nil
	}
	if err := svc.redisSvc.RevokeToken(ctx, token, ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func (svc *LocalBackendService) FilterProgress(ctx context.Context, email string) ([]model.UserProgress, error) {
	records, err := svc.pgSvc.Progress().FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return records, nil
}

func (svc *LocalBackendService) CreateProgress(ctx context.Context, record *model.UserProgress) (*model.UserProgress, error) {
	created := *record
	if created.ID == "" {
		created.ID = uuid.New().String()
	}

	inserted, err := svc.pgSvc.Progress().CreateIfAbsent(ctx, &created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if inserted {
		return &created, nil
	}

	// Another request created the record first; hand that one back.
	records, err := svc.pgSvc.Progress().FindByEmail(ctx, created.UserEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: progress for %s neither created nor found", ErrBackendUnavailable, created.UserEmail)
	}
	return &records[0], nil
}

func (svc *LocalBackendService) UpdateProgress(ctx context.Context, id string, patch model.ProgressPatch) error {
	if len(patch.DownloadedResources) == 0 {
		return nil
	}
	if err := svc.pgSvc.Progress().AddDownloads(ctx, id, model.IDSet(patch.DownloadedResources)); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func (svc *LocalBackendService) ListResources(ctx context.Context) ([]model.Resource, error) {
	resources, err := svc.pgSvc.Resources().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return resources, nil
}

func toCurrentUser(u *model.User) *dto.CurrentUser {
	return &dto.CurrentUser{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		CreatedDate: u.CreatedAt,
	}
}
