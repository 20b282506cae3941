package seeders

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/services/repositories"
	"gorm.io/gorm"
)

// UserSeeder creates the development user with some progress so the
// dashboard has something to show.
type UserSeeder struct {
	users    *repositories.UserRepository
	progress *repositories.ProgressRepository
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{
		users:    repositories.NewUserRepository(db),
		progress: repositories.NewProgressRepository(db),
	}
}

func (s *UserSeeder) SeedUser(ctx context.Context, email, fullName string) (*model.User, error) {
	user, err := s.users.UpsertUser(ctx, email, fullName, model.RoleUser)
	if err != nil {
		return nil, err
	}

	record := model.NewUserProgress(uuid.New().String(), user.Email)
	record.XP = 750
	record.StreakDays = 3
	record.CompletedLessons = model.EncodeIDSet([]string{"res-marketing-101"})
	record.CompletedQuizzes = model.EncodeIDSet([]string{"res-finance-quiz"})
	record.Badges = model.EncodeIDSet([]string{"starter"})

	inserted, err := s.progress.CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, err
	}
	if !inserted {
		log.Printf("Progress for %s already exists, skipping", user.Email)
		return user, nil
	}

	log.Printf("Created dev user %s with sample progress", user.Email)
	return user, nil
}
