package services

import (
	"context"
	"os"
	"strconv"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/progression"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const recentResourceCount = 6

// weeklyActivity is placeholder data until completions carry timestamps.
var weeklyActivity = []dto.ActivityDay{
	{Day: "Mon", Completed: 3},
	{Day: "Tue", Completed: 5},
	{Day: "Wed", Completed: 2},
	{Day: "Thu", Completed: 7},
	{Day: "Fri", Completed: 4},
	{Day: "Sat", Completed: 1},
	{Day: "Sun", Completed: 6},
}

type DashboardService struct {
	appContext.DefaultService

	progress *ProgressService
	catalog  catalogReader
	fallback int
}

type catalogReader interface {
	ListResources(ctx context.Context) ([]model.Resource, error)
}

const DASHBOARD_SVC = "dashboard_svc"

func NewDashboardService(progress *ProgressService, catalog catalogReader, fallback int) *DashboardService {
	return &DashboardService{progress: progress, catalog: catalog, fallback: fallback}
}

func (svc DashboardService) Id() string {
	return DASHBOARD_SVC
}

func (svc *DashboardService) Configure(ctx *appContext.Context) error {
	svc.progress = ctx.Service(PROGRESS_SVC).(*ProgressService)
	svc.catalog = ctx.Service(CATALOG_SVC).(*CatalogService)

	svc.fallback = progression.EmptyCatalogFallback
	if v := os.Getenv("EMPTY_CATALOG_FALLBACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			svc.fallback = n
		}
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *DashboardService) Start() error {
	return nil
}

// Dashboard builds the overview for an already resolved user. The progress
// record is created on first visit.
func (svc *DashboardService) Dashboard(ctx context.Context, user *dto.CurrentUser) (*dto.DashboardResponse, error) {
	var (
		record    *model.UserProgress
		resources []model.Resource
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = svc.progress.EnsureProgress(gctx, user.Email)
		return err
	})
	g.Go(func() error {
		var err error
		resources, err = svc.catalog.ListResources(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithFields(log.Fields{
			"email": user.Email,
			"error": err,
		}).Warn("Dashboard fetch failed")
		return nil, err
	}

	snap := record.Snapshot()
	summary := progression.Summarize(snap, len(resources), svc.fallback)

	recent := make([]dto.ResourceResponse, 0, recentResourceCount)
	for i, r := range resources {
		if i == recentResourceCount {
			break
		}
		recent = append(recent, dto.NewResourceResponse(r))
	}

	activity := make([]dto.ActivityDay, len(weeklyActivity))
	copy(activity, weeklyActivity)

	return &dto.DashboardResponse{
		User:       *user,
		Greeting:   firstName(user),
		XP:         summary.XP,
		Level:      progression.NewLevelInfo(summary.XP),
		StreakDays: summary.StreakDays,
		Progress: dto.ProgressSummary{
			Completed:        summary.Completed,
			Total:            summary.Total,
			Percent:          summary.Percent,
			CatalogEstimated: summary.CatalogEstimated,
		},
		Stats:           dto.StatsFromCounts(summary.Counts),
		WeeklyActivity:  activity,
		RecentResources: recent,
	}, nil
}

// Profile reads the record without creating one. A user with no record
// shows the starter badge only.
func (svc *DashboardService) Profile(ctx context.Context, user *dto.CurrentUser) (*dto.ProfileResponse, error) {
	var (
		record    *model.UserProgress
		resources []model.Resource
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = svc.progress.FindProgress(gctx, user.Email)
		return err
	})
	g.Go(func() error {
		var err error
		resources, err = svc.catalog.ListResources(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := record.Snapshot()
	summary := progression.Summarize(snap, len(resources), svc.fallback)

	catalog := progression.BadgeCatalog()
	earned, locked := progression.Partition(catalog, progression.EarnedBadgeIDs(snap))

	return &dto.ProfileResponse{
		User:        *user,
		Level:       progression.NewLevelInfo(summary.XP),
		StreakDays:  summary.StreakDays,
		Stats:       dto.StatsFromCounts(summary.Counts),
		Earned:      earned,
		Locked:      locked,
		Criteria:    progression.CriteriaProgress(locked, snap, summary.Total),
		HasProgress: record != nil,
	}, nil
}

func firstName(user *dto.CurrentUser) string {
	name := user.DisplayName()
	for i, r := range name {
		if r == ' ' {
			return name[:i]
		}
	}
	return name
}
