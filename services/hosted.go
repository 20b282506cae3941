package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/model"
	log "github.com/sirupsen/logrus"
)

// HostedBackendService talks to the hosted backend-as-a-service over its
// REST API. User calls carry the caller's bearer token, entity calls carry
// the app api key.
type HostedBackendService struct {
	appContext.DefaultService

	client  *fiber.Client
	baseURL string
	appID   string
	apiKey  string
	timeout time.Duration
}

func NewHostedBackend(baseURL, appID, apiKey string, timeout time.Duration) *HostedBackendService {
	svc := &HostedBackendService{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
		apiKey:  apiKey,
		timeout: timeout,
	}
	svc.initClient()
	return svc
}

func (svc HostedBackendService) Id() string {
	return BACKEND_SVC
}

func (svc *HostedBackendService) Configure(ctx *appContext.Context) error {
	svc.baseURL = strings.TrimRight(os.Getenv("BACKEND_URL"), "/")
	if svc.baseURL == "" {
		svc.baseURL = "https://app.base44.com"
	}

	svc.appID = os.Getenv("BACKEND_APP_ID")
	svc.apiKey = os.Getenv("BACKEND_API_KEY")

	svc.timeout = 10 * time.Second
	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			svc.timeout = d
		}
	}

	svc.initClient()
	return svc.DefaultService.Configure(ctx)
}

func (svc *HostedBackendService) Start() error {
	if svc.appID == "" {
		log.Warn("BACKEND_APP_ID is not set, hosted backend calls will fail")
	}
	log.WithFields(log.Fields{
		"base_url": svc.baseURL,
		"app_id":   svc.appID,
	}).Info("Hosted backend configured")
	return nil
}

func (svc *HostedBackendService) initClient() {
	svc.client = &fiber.Client{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	}
}

func (svc *HostedBackendService) appURL(path string) string {
	return fmt.Sprintf("%s/api/apps/%s/%s", svc.baseURL, svc.appID, strings.TrimLeft(path, "/"))
}

func (svc *HostedBackendService) Me(ctx context.Context, token string) (*dto.CurrentUser, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	agent := svc.client.Get(svc.appURL("entities/User/me"))
	svc.withUser(agent, token)

	var user dto.CurrentUser
	if err := svc.do(ctx, agent, &user); err != nil {
		return nil, err
	}
	if user.Email == "" {
		return nil, ErrUnauthenticated
	}
	return &user, nil
}

func (svc *HostedBackendService) UpdateMe(ctx context.Context, token string, patch dto.UpdateProfileRequest) (*dto.CurrentUser, error) {
	agent := svc.client.Put(svc.appURL("entities/User/me"))
	svc.withUser(agent, token)
	agent.JSON(patch)

	var user dto.CurrentUser
	if err := svc.do(ctx, agent, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (svc *HostedBackendService) Logout(ctx context.Context, token string) error {
	agent := svc.client.Post(svc.appURL("auth/logout"))
	svc.withUser(agent, token)
	return svc.do(ctx, agent, nil)
}

func (svc *HostedBackendService) FilterProgress(ctx context.Context, email string) ([]model.UserProgress, error) {
	query, err := sonic.MarshalString(map[string]string{"user_email": email})
	if err != nil {
		return nil, err
	}

	agent := svc.client.Get(svc.appURL("entities/UserProgress"))
	svc.withAPIKey(agent)
	agent.QueryString("q=" + url.QueryEscape(query))

	records := make([]model.UserProgress, 0)
	if err := svc.do(ctx, agent, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (svc *HostedBackendService) CreateProgress(ctx context.Context, record *model.UserProgress) (*model.UserProgress, error) {
	agent := svc.client.Post(svc.appURL("entities/UserProgress"))
	svc.withAPIKey(agent)
	agent.JSON(record)

	var created model.UserProgress
	if err := svc.do(ctx, agent, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (svc *HostedBackendService) UpdateProgress(ctx context.Context, id string, patch model.ProgressPatch) error {
	if id == "" {
		return fmt.Errorf("update progress: record has no id")
	}

	agent := svc.client.Put(svc.appURL("entities/UserProgress/" + url.PathEscape(id)))
	svc.withAPIKey(agent)
	agent.JSON(patch)

	return svc.do(ctx, agent, nil)
}

func (svc *HostedBackendService) ListResources(ctx context.Context) ([]model.Resource, error) {
	agent := svc.client.Get(svc.appURL("entities/Resource"))
	svc.withAPIKey(agent)

	resources := make([]model.Resource, 0)
	if err := svc.do(ctx, agent, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (svc *HostedBackendService) withUser(agent *fiber.Agent, token string) {
	agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	agent.Set("X-App-Id", svc.appID)
}

func (svc *HostedBackendService) withAPIKey(agent *fiber.Agent) {
	agent.Set("api_key", svc.apiKey)
	agent.Set("X-App-Id", svc.appID)
}

// do sends the request and decodes a 2xx body into dest. The agent has no
// context support, so the deadline is applied as the request timeout.
func (svc *HostedBackendService) do(ctx context.Context, agent *fiber.Agent, dest interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	timeout := svc.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout || timeout <= 0 {
			timeout = left
		}
	}
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		log.WithError(errs[0]).Warn("Hosted backend request failed")
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, errs[0])
	}

	switch {
	case code == fiber.StatusUnauthorized || code == fiber.StatusForbidden:
		return ErrUnauthenticated
	case code == fiber.StatusNotFound:
		return ErrNotFound
	case code >= 300:
		log.WithFields(log.Fields{
			"status": code,
			"body":   truncate(string(body), 200),
		}).Warn("Hosted backend returned an error")
		return fmt.Errorf("%w: status %d", ErrBackendUnavailable, code)
	}

	if dest == nil || len(body) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
