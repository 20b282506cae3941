package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/shared"
)

type fakeBackend struct {
	mu sync.Mutex

	users     map[string]dto.CurrentUser // by token
	progress  map[string][]model.UserProgress
	resources []model.Resource

	meErr       error
	updateMeErr error
	filterErr   error
	createErr   error
	listErr     error

	// filterDelay widens the window between reading and creating a record.
	filterDelay time.Duration
	// uniqueEmail rejects a second record for an email like a unique index.
	uniqueEmail bool
	// beforeCreate and beforeUpdate run under the lock and stand in for
	// other writers touching the store.
	beforeCreate func(f *fakeBackend, record *model.UserProgress)
	beforeUpdate func(f *fakeBackend, id string)

	creates   int
	updates   int
	listCalls int
	loggedOut []string
	lastPatch dto.UpdateProfileRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users: map[string]dto.CurrentUser{
			"good-token": {ID: "u1", Email: "ada@example.com", FullName: "Ada Lovelace"},
		},
		progress: map[string][]model.UserProgress{},
	}
}

func (f *fakeBackend) Me(ctx context.Context, token string) (*dto.CurrentUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.meErr != nil {
		return nil, f.meErr
	}
	u, ok := f.users[token]
	if !ok {
		return nil, ErrUnauthenticated
	}
	return &u, nil
}

func (f *fakeBackend) UpdateMe(ctx context.Context, token string, patch dto.UpdateProfileRequest) (*dto.CurrentUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPatch = patch
	if f.updateMeErr != nil {
		return nil, f.updateMeErr
	}
	u, ok := f.users[token]
	if !ok {
		return nil, ErrUnauthenticated
	}
	u.FullName = patch.FullName
	f.users[token] = u
	return &u, nil
}

func (f *fakeBackend) Logout(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func (f *fakeBackend) FilterProgress(ctx context.Context, email string) ([]model.UserProgress, error) {
	if f.filterDelay > 0 {
		time.Sleep(f.filterDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	out := make([]model.UserProgress, len(f.progress[email]))
	copy(out, f.progress[email])
	return out, nil
}

func (f *fakeBackend) CreateProgress(ctx context.Context, record *model.UserProgress) (*model.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.beforeCreate != nil {
		f.beforeCreate(f, record)
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.uniqueEmail && len(f.progress[record.UserEmail]) > 0 {
		return nil, fmt.Errorf("%w: duplicate user_email %s", ErrBackendUnavailable, record.UserEmail)
	}
	f.creates++
	f.progress[record.UserEmail] = append(f.progress[record.UserEmail], *record)
	created := *record
	return &created, nil
}

// UpdateProgress applies only the patched columns, as the hosted backend's
// entity PUT does.
func (f *fakeBackend) UpdateProgress(ctx context.Context, id string, patch model.ProgressPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.beforeUpdate != nil {
		f.beforeUpdate(f, id)
	}
	for email, records := range f.progress {
		for i := range records {
			if records[i].ID == id {
				if patch.DownloadedResources != nil {
					f.progress[email][i].DownloadedResources = patch.DownloadedResources
				}
				f.updates++
				return nil
			}
		}
	}
	return fmt.Errorf("record %s: %w", id, ErrNotFound)
}

// completeLesson records a lesson completion the way the lesson player
// does, outside of this service.
func (f *fakeBackend) completeLesson(id, lessonID string, xp int) {
	for email, records := range f.progress {
		for i := range records {
			if records[i].ID == id {
				r := &f.progress[email][i]
				r.CompletedLessons = model.EncodeIDSet(append(model.IDSet(r.CompletedLessons), lessonID))
				r.XP += xp
			}
		}
	}
}

func (f *fakeBackend) ListResources(ctx context.Context) ([]model.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Resource, len(f.resources))
	copy(out, f.resources)
	return out, nil
}

func (f *fakeBackend) seedProgress(record model.UserProgress) {
	f.progress[record.UserEmail] = append(f.progress[record.UserEmail], record)
}

// fakeCache stores values already encoded so reads go through the same
// decode path as redis.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	readErr error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return false, c.readErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, shared.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := shared.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	c.sets++
	return nil
}

type fakeSigner struct {
	calls []string
	err   error
}

func (s *fakeSigner) PresignedDownloadURL(ctx context.Context, objectName, filename string) (string, time.Duration, error) {
	if s.err != nil {
		return "", 0, s.err
	}
	s.calls = append(s.calls, objectName)
	return "https://files.example.com/" + objectName + "?sig=abc", 15 * time.Minute, nil
}

type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}}
}

func (f *fakeCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, 0, f.err
	}
	f.counts[key]++
	return f.counts[key], window, nil
}

func sampleResources() []model.Resource {
	return []model.Resource{
		{ID: "r1", Title: "Marketing Fundamentals", Type: model.ResourceLesson, Category: "Marketing"},
		{ID: "r2", Title: "Finance Quiz", Type: model.ResourceQuiz, Category: "Finance"},
		{ID: "r3", Title: "Leadership Webinar", Type: model.ResourceVideo, Description: "Leading small teams"},
		{ID: "r4", Title: "Business Plan Template", Type: model.ResourceDownload, ObjectKey: "templates/business-plan.docx"},
		{ID: "r5", Title: "Ethics Module", Type: model.ResourceLesson},
		{ID: "r6", Title: "Startup Talk", Type: model.ResourceVideo},
		{ID: "r7", Title: "Budget Sheet", Type: model.ResourceDownload, URL: "https://cdn.example.com/budget.xlsx"},
		{ID: "r8", Title: "Entrepreneurship Assessment", Type: model.ResourceQuiz},
	}
}

type testServices struct {
	backend   *fakeBackend
	cache     *fakeCache
	signer    *fakeSigner
	auth      *AuthService
	progress  *ProgressService
	catalog   *CatalogService
	dashboard *DashboardService
}

func newTestServices() *testServices {
	backend := newFakeBackend()
	backend.resources = sampleResources()

	cache := newFakeCache()
	signer := &fakeSigner{}
	progress := NewProgressService(backend)
	catalog := &CatalogService{
		backend:  backend,
		cache:    cache,
		signer:   signer,
		progress: progress,
		cacheTTL: time.Minute,
	}

	return &testServices{
		backend:   backend,
		cache:     cache,
		signer:    signer,
		auth:      NewAuthService(backend, "https://app.example.com/login"),
		progress:  progress,
		catalog:   catalog,
		dashboard: NewDashboardService(progress, catalog, 20),
	}
}
