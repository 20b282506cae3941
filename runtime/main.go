package main

import (
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/lac-hong-legacy/epsilon_api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
)

// @title Epsilon API
// @version 1.0
// @description Learner dashboard API: progress, calendar, badges and resources.
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using process environment")
	}

	configureLogging(os.Getenv("LOG_LEVEL"))

	var (
		ctx *context.Context
		err error
	)

	driver := strings.ToLower(os.Getenv("BACKEND_DRIVER"))
	switch driver {
	case "", "hosted":
		ctx, err = context.NewCtx(
			&services.MonitoringService{},
			&services.RedisService{},
			&services.MinIOService{},
			&services.HostedBackendService{},

			&services.AuthService{},
			&services.ProgressService{},
			&services.CatalogService{},
			&services.DashboardService{},
			&services.CalendarService{},

			&services.HttpService{},
		)
	case "postgres", "local":
		ctx, err = context.NewCtx(
			&services.MonitoringService{},
			&services.RedisService{},
			&services.MinIOService{},
			&services.PostgresService{},
			&services.JWTService{},
			&services.LocalBackendService{},

			&services.AuthService{},
			&services.ProgressService{},
			&services.CatalogService{},
			&services.DashboardService{},
			&services.CalendarService{},

			&services.HttpService{},
		)
	default:
		log.Fatal().Str("driver", driver).Msg("Unknown BACKEND_DRIVER")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure services")
		return
	}
	log.Info().Str("driver", driver).Msg("Backend selected")

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service stopped")
		return
	}
}

func configureLogging(level string) {
	switch strings.ToUpper(level) {
	case "TRACE":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		logrus.SetLevel(logrus.TraceLevel)
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logrus.SetLevel(logrus.DebugLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		logrus.SetLevel(logrus.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})
}
