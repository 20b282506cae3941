package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/lac-hong-legacy/epsilon_api/docs"
	"github.com/lac-hong-legacy/epsilon_api/middleware"
	"github.com/lac-hong-legacy/epsilon_api/services/handlers"
	"github.com/lac-hong-legacy/epsilon_api/shared"
	log "github.com/sirupsen/logrus"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	dashboardSvc  *DashboardService
	catalogSvc    *CatalogService
	calendarSvc   *CalendarService
	monitoringSvc *MonitoringService
	limiter       middleware.WindowCounter

	port        int
	corsOrigins string
	app         *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	svc.corsOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")

	svc.authSvc = ctx.Service(AUTH_SVC).(*AuthService)
	svc.dashboardSvc = ctx.Service(DASHBOARD_SVC).(*DashboardService)
	svc.catalogSvc = ctx.Service(CATALOG_SVC).(*CatalogService)
	svc.calendarSvc = ctx.Service(CALENDAR_SVC).(*CalendarService)
	svc.limiter = ctx.Service(REDIS_SVC).(*RedisService)
	svc.monitoringSvc, _ = ctx.Service(MONITORING_SVC).(*MonitoringService)

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.app = svc.newApp()
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		ErrorHandler: svc.handleError,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	docs.SwaggerInfo.BasePath = ""

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: shared.RequestID,
	}))
	if os.Getenv("LOG_LEVEL") == "TRACE" {
		app.Use(logger.New())
	}

	corsConfig := cors.Config{
		AllowOrigins: svc.corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,OPTIONS",
	}
	if svc.corsOrigins != "*" {
		corsConfig.AllowCredentials = true
	}
	app.Use(cors.New(corsConfig))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	dashboardHandler := handlers.NewDashboardHandler(svc.dashboardSvc)
	resourceHandler := handlers.NewResourceHandler(svc.catalogSvc)
	calendarHandler := handlers.NewCalendarHandler(svc.calendarSvc)

	requiredAuth := middleware.RequiredAuth(svc.authSvc)
	limit := func(rule middleware.RateLimitRule) fiber.Handler {
		return middleware.RateLimit(svc.limiter, rule, svc.monitoringSvc.RecordRateLimited)
	}

	v1 := app.Group("/api/v1", limit(middleware.APIGeneralRule))
	v1.Get("/ping", svc.ping)

	auth := v1.Group("/auth")
	auth.Get("/login", authHandler.Login)
	auth.Get("/login-url", authHandler.LoginURL)
	auth.Get("/me", requiredAuth, authHandler.Me)
	auth.Post("/logout", requiredAuth, authHandler.Logout)

	v1.Put("/user/profile", requiredAuth, limit(middleware.ProfileUpdateRule), authHandler.UpdateProfile)

	v1.Get("/dashboard", requiredAuth, dashboardHandler.GetDashboard)
	v1.Get("/profile", requiredAuth, dashboardHandler.GetProfile)
	v1.Get("/badges", dashboardHandler.GetBadges)

	resources := v1.Group("/resources", requiredAuth)
	resources.Get("/", resourceHandler.ListResources)
	resources.Get("/:id", resourceHandler.GetResource)
	resources.Post("/:id/download", limit(middleware.DownloadRule), resourceHandler.DownloadResource)

	calendar := v1.Group("/calendar")
	calendar.Get("/", calendarHandler.GetMonth)
	calendar.Get("/events", calendarHandler.GetEvents)
	calendar.Get("/upcoming", calendarHandler.GetUpcoming)

	app.Use(func(c *fiber.Ctx) error {
		return shared.NewNotFoundError(nil, "Not Found")
	})

	return app
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

// handleError turns every error into the response envelope. Backend
// sentinels get their status here; an unauthenticated caller also gets the
// login address to go to.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	appErr, ok := shared.GetAppError(err)
	if !ok {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			from := c.Get(fiber.HeaderReferer)
			if from == "" {
				from = c.OriginalURL()
			}
			appErr = shared.NewUnauthorizedError(err, "Unauthorized", svc.authSvc.LoginURL(from))
		case errors.Is(err, ErrBackendUnavailable):
			appErr = shared.NewBadGatewayError(err, "Backend unavailable")
		case errors.Is(err, ErrNotFound):
			appErr = shared.NewNotFoundError(err, "Not Found")
		default:
			appErr = shared.NewInternalError(err, "Internal Server Error")
		}
	}

	if appErr.StatusCode >= fiber.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     appErr.StatusCode,
			"request_id": c.Locals(shared.RequestID),
			"error":      err,
		}).Error("Request failed")
	}

	return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
}
