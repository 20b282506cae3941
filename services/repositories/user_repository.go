package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := ds.with(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := ds.with(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) UpdateFullName(ctx context.Context, userID, fullName string) (*model.User, error) {
	err := ds.with(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"full_name":  fullName,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return ds.GetUser(ctx, userID)
}

// UpsertUser creates the user or refreshes the name of an existing one,
// matching on email.
func (ds *UserRepository) UpsertUser(ctx context.Context, email, fullName, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleUser
	}
	user := &model.User{
		ID:       uuid.New().String(),
		Email:    strings.ToLower(email),
		FullName: fullName,
		Role:     role,
	}

	err := ds.with(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "role", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return ds.GetUserByEmail(ctx, email)
}
