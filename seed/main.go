package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lac-hong-legacy/epsilon_api/seed/seeders"
	"github.com/lac-hong-legacy/epsilon_api/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, resources, user")
		dsn      = flag.String("dsn", "", "Postgres DSN (overrides DATABASE_URL)")
		email    = flag.String("email", "learner@example.com", "Dev user email")
		name     = flag.String("name", "Dev Learner", "Dev user full name")
		files    = flag.String("files", "", "Directory holding files for downloadable resources, uploaded to MinIO")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	databaseURL := *dsn
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		log.Fatal("DATABASE_URL or -dsn is required")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	mainSeeder := seeders.NewMainSeeder(db)
	if err := mainSeeder.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	switch *seedType {
	case "all":
		user, err := mainSeeder.SeedAll(ctx, *email, *name)
		if err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		printToken(user.ID, user.Email, user.FullName)
	case "resources":
		if err := mainSeeder.SeedResourcesOnly(ctx); err != nil {
			log.Fatalf("Failed to seed resources: %v", err)
		}
	case "user":
		user, err := mainSeeder.SeedUserOnly(ctx, *email, *name)
		if err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}
		printToken(user.ID, user.Email, user.FullName)
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'resources' or 'user'", *seedType)
	}

	if *files != "" {
		storage, err := services.NewMinIOService()
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
		if err := seeders.UploadFiles(ctx, storage, *files); err != nil {
			log.Fatalf("Failed to upload resource files: %v", err)
		}
	}

	log.Println("Seeding operation completed successfully!")
}

// printToken mints a token the local backend accepts for the seeded user.
func printToken(userID, email, fullName string) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET not set, skipping dev token")
		return
	}

	token, err := services.NewJWTService(secret, 24*time.Hour).GenerateToken(userID, email, fullName)
	if err != nil {
		log.Printf("Failed to mint dev token: %v", err)
		return
	}
	fmt.Printf("Authorization: %s %s\n", token.TokenType, token.AccessToken)
}

func showHelp() {
	log.Println(`
Seeds the local backend with a sample resource catalog and a dev user.

Usage: go run ./seed [flags]

Flags:
  -type string   all, resources or user (default "all")
  -dsn string    Postgres DSN (overrides DATABASE_URL)
  -email string  Dev user email (default "learner@example.com")
  -name string   Dev user full name (default "Dev Learner")
  -files string  Directory with resource files (e.g. templates/budget.xlsx) to upload to MinIO

Environment Variables:
  DATABASE_URL - Postgres connection string
  JWT_SECRET   - When set, a dev bearer token is printed for the seeded user
  MINIO_*      - Object storage settings, used with -files
`)
}
