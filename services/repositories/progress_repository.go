package repositories

import (
	"context"
	"time"

	"github.com/lac-hong-legacy/epsilon_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProgressRepository) FindByEmail(ctx context.Context, email string) ([]model.UserProgress, error) {
	records := make([]model.UserProgress, 0)
	err := ds.with(ctx).
		Where("user_email = ?", email).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

// CreateIfAbsent inserts record unless its email already has one. It
// reports whether the row was inserted.
func (ds *ProgressRepository) CreateIfAbsent(ctx context.Context, record *model.UserProgress) (bool, error) {
	result := ds.with(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_email"}},
			DoNothing: true,
		}).
		Create(record)
	return result.RowsAffected > 0, result.Error
}

// AddDownloads appends each id missing from the record's downloaded set in
// a single statement per id, so concurrent writers never drop each other's
// entries and the other columns are left alone.
func (ds *ProgressRepository) AddDownloads(ctx context.Context, id string, resourceIDs []string) error {
	return ds.with(ctx).Transaction(func(tx *gorm.DB) error {
		for _, resourceID := range resourceIDs {
			err := tx.Model(&model.UserProgress{}).
				Where("id = ?", id).
				Where("NOT (COALESCE(downloaded_resources, '[]'::jsonb) @> jsonb_build_array(?::text))", resourceID).
				Updates(map[string]interface{}{
					"downloaded_resources": gorm.Expr("COALESCE(downloaded_resources, '[]'::jsonb) || jsonb_build_array(?::text)", resourceID),
					"updated_at":           time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
