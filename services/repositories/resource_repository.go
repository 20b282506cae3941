package repositories

import (
	"context"

	"github.com/lac-hong-legacy/epsilon_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResourceRepository struct {
	BaseRepository
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ResourceRepository) List(ctx context.Context) ([]model.Resource, error) {
	resources := make([]model.Resource, 0)
	err := ds.with(ctx).Order("created_at ASC").Find(&resources).Error
	return resources, err
}

// Upsert inserts the resources, overwriting existing rows with the same id.
func (ds *ResourceRepository) Upsert(ctx context.Context, resources []model.Resource) error {
	if len(resources) == 0 {
		return nil
	}
	return ds.with(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&resources).Error
}
