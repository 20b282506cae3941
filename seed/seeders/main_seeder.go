package seeders

import (
	"context"
	"log"

	"github.com/lac-hong-legacy/epsilon_api/model"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// Migrate creates the tables the local backend reads.
func (s *MainSeeder) Migrate() error {
	return s.db.AutoMigrate(&model.User{}, &model.UserProgress{}, &model.Resource{})
}

// SeedAll seeds the resource catalog and then the dev user.
func (s *MainSeeder) SeedAll(ctx context.Context, email, fullName string) (*model.User, error) {
	log.Println("Starting database seeding...")

	if err := s.SeedResourcesOnly(ctx); err != nil {
		log.Printf("Resource seeding failed: %v", err)
		return nil, err
	}

	user, err := s.SeedUserOnly(ctx, email, fullName)
	if err != nil {
		log.Printf("User seeding failed: %v", err)
		return nil, err
	}

	log.Println("Database seeding completed successfully!")
	return user, nil
}

func (s *MainSeeder) SeedResourcesOnly(ctx context.Context) error {
	return NewResourceSeeder(s.db).SeedResources(ctx)
}

func (s *MainSeeder) SeedUserOnly(ctx context.Context, email, fullName string) (*model.User, error) {
	return NewUserSeeder(s.db).SeedUser(ctx, email, fullName)
}
