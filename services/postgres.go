package services

import (
	"fmt"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/services/repositories"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database   string
	maxRetries int
	retryDelay time.Duration

	users     *repositories.UserRepository
	progress  *repositories.ProgressRepository
	resources *repositories.ResourceRepository
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "epsilon"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_SSLMODE", "disable"),
			getEnv("DB_TIMEZONE", "UTC"))
	}

	ds.maxRetries = 10
	ds.retryDelay = time.Second

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	maxRetries := ds.maxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	retryDelay := ds.retryDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		attemptLog := log.WithFields(log.Fields{
			"attempt":     attempt,
			"max_retries": maxRetries,
		})
		attemptLog.Info("Connecting to database")

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					attemptLog.Info("Connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			attemptLog.WithError(err).Error("Giving up connecting to database")
			return err
		}

		attemptLog.WithError(err).WithField("retry_in", retryDelay.String()).Warn("Database connection failed")
		time.Sleep(retryDelay)

		// Exponential backoff with max delay of 10 seconds
		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	err = ds.db.AutoMigrate(
		&model.User{},
		&model.UserProgress{},
		&model.Resource{},
	)
	if err != nil {
		log.WithError(err).Error("Failed to migrate database")
		return err
	}

	ds.users = repositories.NewUserRepository(ds.db)
	ds.progress = repositories.NewProgressRepository(ds.db)
	ds.resources = repositories.NewResourceRepository(ds.db)

	log.Info("Database connected and migrated")
	return nil
}

func (ds *PostgresService) Shutdown() {
	if ds.db == nil {
		return
	}
	if sqlDB, err := ds.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (ds *PostgresService) Users() *repositories.UserRepository {
	return ds.users
}

func (ds *PostgresService) Progress() *repositories.ProgressRepository {
	return ds.progress
}

func (ds *PostgresService) Resources() *repositories.ResourceRepository {
	return ds.resources
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
