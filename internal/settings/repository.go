package settings

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumenarts/gallery-api/pkg/db/models"
	"github.com/lumenarts/gallery-api/pkg/enums"
)

// Repository stores one settings row per key.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrSeed returns the row for key, inserting defaults first when it does
// not exist. The insert is a no-op on conflict so concurrent first reads
// converge on a single row.
func (r *Repository) GetOrSeed(ctx context.Context, key enums.SettingKey, defaults datatypes.JSON) (*models.Setting, error) {
	seed := models.Setting{Key: key, Value: defaults}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error; err != nil {
		return nil, err
	}

	var setting models.Setting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert replaces the value stored under key.
func (r *Repository) Upsert(ctx context.Context, key enums.SettingKey, value datatypes.JSON) (*models.Setting, error) {
	setting := models.Setting{Key: key, Value: value}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
