package styles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/db/models"
)

// Repository persists styles.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]models.Style, error) {
	items := []models.Style{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Style, error) {
	var style models.Style
	if err := r.db.WithContext(ctx).First(&style, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &style, nil
}

// Exists reports whether another style already uses name or slug.
func (r *Repository) Exists(ctx context.Context, name, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Style{}).Where("(name = ? OR slug = ?)", name, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Create(ctx context.Context, style *models.Style) error {
	return r.db.WithContext(ctx).Create(style).Error
}

func (r *Repository) Save(ctx context.Context, style *models.Style) error {
	return r.db.WithContext(ctx).Save(style).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Style{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
