package variants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/db/models"
)

// Repository persists reusable variant groups.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]models.Variant, error) {
	items := []models.Variant{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListSlugs returns every variant slug. The catalog uses them to recognise
// variant filter parameters.
func (r *Repository) ListSlugs(ctx context.Context) ([]string, error) {
	slugs := []string{}
	if err := r.db.WithContext(ctx).Model(&models.Variant{}).Order("slug ASC").Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// SlugsByName maps each variant name to its slug so product variant groups
// carry the same slug the catalog filters on.
func (r *Repository) SlugsByName(ctx context.Context) (map[string]string, error) {
	var rows []models.Variant
	if err := r.db.WithContext(ctx).Select("name", "slug").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Name] = row.Slug
	}
	return out, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// Exists reports whether another variant already uses name or slug.
func (r *Repository) Exists(ctx context.Context, name, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Variant{}).Where("(name = ? OR slug = ?)", name, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Create(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *Repository) Save(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Variant{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
