package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const resourceCacheKey = "catalog:resources"

type resourceCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type downloadSigner interface {
	PresignedDownloadURL(ctx context.Context, objectName, filename string) (string, time.Duration, error)
}

// CatalogService reads the resource catalog through a short lived cache and
// hands out download links.
type CatalogService struct {
	appContext.DefaultService

	backend  Backend
	cache    resourceCache
	signer   downloadSigner
	progress *ProgressService
	metrics  *MonitoringService
	cacheTTL time.Duration
}

const CATALOG_SVC = "catalog_svc"

func (svc CatalogService) Id() string {
	return CATALOG_SVC
}

func (svc *CatalogService) Configure(ctx *appContext.Context) error {
	svc.backend = backendFrom(ctx)
	svc.cache = ctx.Service(REDIS_SVC).(*RedisService)
	svc.signer = ctx.Service(MINIO_SVC).(*MinIOService)
	svc.progress = ctx.Service(PROGRESS_SVC).(*ProgressService)
	svc.metrics, _ = ctx.Service(MONITORING_SVC).(*MonitoringService)

	svc.cacheTTL = time.Minute
	if v := os.Getenv("RESOURCE_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			svc.cacheTTL = d
		}
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *CatalogService) Start() error {
	return nil
}

// ListResources returns the full catalog. A cache failure falls through to
// the backend; a backend failure is returned as is.
func (svc *CatalogService) ListResources(ctx context.Context) ([]model.Resource, error) {
	if svc.cache != nil && svc.cacheTTL > 0 {
		var cached []model.Resource
		found, err := svc.cache.GetJSON(ctx, resourceCacheKey, &cached)
		if err != nil {
			log.WithError(err).Warn("Resource cache read failed")
		} else {
			svc.metrics.RecordCacheLookup("resources", found)
			if found {
				return cached, nil
			}
		}
	}

	resources, err := svc.backend.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	if svc.cache != nil && svc.cacheTTL > 0 {
		if err := svc.cache.Set(ctx, resourceCacheKey, resources, svc.cacheTTL); err != nil {
			log.WithError(err).Warn("Resource cache write failed")
		}
	}
	return resources, nil
}

func (svc *CatalogService) GetResource(ctx context.Context, id string) (*model.Resource, error) {
	resources, err := svc.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	for i := range resources {
		if resources[i].ID == id {
			return &resources[i], nil
		}
	}
	return nil, fmt.Errorf("resource %s: %w", id, ErrNotFound)
}

func (svc *CatalogService) ResourceByID(ctx context.Context, id string) (*dto.ResourceResponse, error) {
	resource, err := svc.GetResource(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewResourceResponse(*resource)
	return &resp, nil
}

// Browse lists the catalog filtered by q, flagging what the user has
// already downloaded.
func (svc *CatalogService) Browse(ctx context.Context, email string, q dto.ResourceQuery) (*dto.ResourceListResponse, error) {
	var (
		resources []model.Resource
		record    *model.UserProgress
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resources, err = svc.ListResources(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		record, err = svc.progress.FindProgress(gctx, email)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	downloaded := map[string]bool{}
	if record != nil {
		for _, id := range model.IDSet(record.DownloadedResources) {
			downloaded[id] = true
		}
	}

	filtered := FilterResources(resources, q.Type, q.Search)
	out := make([]dto.ResourceResponse, 0, len(filtered))
	for _, r := range filtered {
		resp := dto.NewResourceResponse(r)
		resp.Downloaded = downloaded[r.ID]
		out = append(out, resp)
	}

	return &dto.ResourceListResponse{Resources: out, Total: len(out)}, nil
}

// DownloadURL returns a link for a downloadable resource and records the
// download against the user.
func (svc *CatalogService) DownloadURL(ctx context.Context, email, id string) (*dto.DownloadResponse, error) {
	resource, err := svc.GetResource(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource.Type != model.ResourceDownload {
		return nil, shared.NewBadRequestError(fmt.Errorf("resource %s is a %s", id, resource.Type), "Resource is not downloadable")
	}

	resp := &dto.DownloadResponse{ResourceID: resource.ID, URL: resource.URL}
	if resource.ObjectKey != "" {
		link, expiry, err := svc.signer.PresignedDownloadURL(ctx, resource.ObjectKey, path.Base(resource.ObjectKey))
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to create download link")
		}
		resp.URL = link
		resp.ExpiresIn = int64(expiry.Seconds())
	}
	if resp.URL == "" {
		return nil, shared.NewNotFoundError(fmt.Errorf("resource %s has no file", id), "Resource file not found")
	}

	recorded, err := svc.progress.RecordDownload(ctx, email, resource.ID)
	if err != nil {
		return nil, err
	}
	resp.Recorded = recorded
	svc.metrics.RecordDownload()

	log.WithFields(log.Fields{
		"email":       email,
		"resource_id": resource.ID,
		"recorded":    recorded,
	}).Info("Resource download issued")
	return resp, nil
}

// FilterResources keeps resources of type kind (any when empty) whose
// title, description or category contains search, ignoring case.
func FilterResources(resources []model.Resource, kind, search string) []model.Resource {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Resource, 0, len(resources))
	for _, r := range resources {
		if kind != "" && r.Type != kind {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Title), search) &&
			!strings.Contains(strings.ToLower(r.Description), search) &&
			!strings.Contains(strings.ToLower(r.Category), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}
