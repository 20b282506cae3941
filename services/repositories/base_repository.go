package repositories

import (
	"context"

	"gorm.io/gorm"
)

// BaseRepository provides common database functionality
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

func (r *BaseRepository) with(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}
