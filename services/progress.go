package services

import (
	"context"
	"fmt"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/lac-hong-legacy/epsilon_api/model"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ProgressService owns the read and lazy-create path for UserProgress
// records.
type ProgressService struct {
	appContext.DefaultService

	backend  Backend
	creating *singleflight.Group
}

const PROGRESS_SVC = "progress_svc"

func NewProgressService(backend Backend) *ProgressService {
	return &ProgressService{backend: backend, creating: &singleflight.Group{}}
}

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *appContext.Context) error {
	svc.backend = backendFrom(ctx)
	if svc.creating == nil {
		svc.creating = &singleflight.Group{}
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	return nil
}

// EnsureProgress returns the user's record, creating the all-zero default
// when none exists. An existing record is never overwritten. Concurrent
// first visits for one email share a single create, and a create that loses
// to another writer falls back to the record that writer stored.
func (svc *ProgressService) EnsureProgress(ctx context.Context, email string) (*model.UserProgress, error) {
	existing, err := svc.FindProgress(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	v, err, _ := svc.creating.Do(email, func() (interface{}, error) {
		return svc.createProgress(ctx, email)
	})
	if err != nil {
		return nil, err
	}

	record := *v.(*model.UserProgress)
	return &record, nil
}

func (svc *ProgressService) createProgress(ctx context.Context, email string) (*model.UserProgress, error) {
	existing, err := svc.FindProgress(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	created, createErr := svc.backend.CreateProgress(ctx, model.NewUserProgress(uuid.New().String(), email))
	if createErr == nil {
		log.WithField("email", email).Info("Created default progress record")
		return created, nil
	}

	existing, err = svc.FindProgress(ctx, email)
	if err == nil && existing != nil {
		log.WithError(createErr).WithField("email", email).Info("Progress record created concurrently, using it")
		return existing, nil
	}
	return nil, fmt.Errorf("create progress: %w", createErr)
}

// FindProgress returns the first record for email, or nil when there is
// none.
func (svc *ProgressService) FindProgress(ctx context.Context, email string) (*model.UserProgress, error) {
	records, err := svc.backend.FilterProgress(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("filter progress: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if len(records) > 1 {
		log.WithFields(log.Fields{
			"email": email,
			"count": len(records),
		}).Warn("Multiple progress records found, using the first")
	}

	record := records[0]
	return &record, nil
}

// RecordDownload adds resourceID to the user's downloaded set. It reports
// whether the set changed. Only the downloaded set is written back, so
// completions recorded elsewhere in the meantime are kept.
func (svc *ProgressService) RecordDownload(ctx context.Context, email, resourceID string) (bool, error) {
	record, err := svc.EnsureProgress(ctx, email)
	if err != nil {
		return false, err
	}

	if !record.AddDownload(resourceID) {
		return false, nil
	}

	patch := model.ProgressPatch{DownloadedResources: record.DownloadedResources}
	if err := svc.backend.UpdateProgress(ctx, record.ID, patch); err != nil {
		return false, fmt.Errorf("update progress: %w", err)
	}
	return true, nil
}
