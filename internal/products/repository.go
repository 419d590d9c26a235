package products

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/db"
	"github.com/lumenarts/gallery-api/pkg/db/models"
	dbtypes "github.com/lumenarts/gallery-api/pkg/db/types"
	"github.com/lumenarts/gallery-api/pkg/pagination"
)

// RelatedLimit caps the related-products result.
const RelatedLimit = 4

const distinctColorsQuery = `
SELECT DISTINCT c.color
FROM products p, unnest(p.colors) AS c(color)
WHERE p.published = true
ORDER BY c.color
`

// Repository wires together product persistence and the catalog queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a product regardless of its published flag.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads a product by slug. When publishedOnly is set drafts are
// reported as not found.
func (r *Repository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Product, error) {
	query := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	var product models.Product
	if err := query.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SlugExists reports whether another product already uses slug.
func (r *Repository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Save writes every column of an existing product.
func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete hard deletes the product and reports whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListCatalog returns one page of published products matching filter along
// with the total number of matches.
func (r *Repository) ListCatalog(ctx context.Context, filter CatalogFilter) ([]models.Product, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Product{}).Scopes(catalogScope(filter))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []models.Product{}
	if total == 0 {
		return items, 0, nil
	}

	if err := base().
		Scopes(catalogOrder(filter.Sort)).
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// RelatedQuery names the taxonomy a related lookup should overlap with.
type RelatedQuery struct {
	ExcludeSlug string
	Categories  []uuid.UUID
	Styles      []string
	Colors      []string
}

func (q RelatedQuery) empty() bool {
	return len(q.Categories) == 0 && len(q.Styles) == 0 && len(q.Colors) == 0
}

// ListRelated returns published products sharing at least one category,
// style or color with q, newest first.
func (r *Repository) ListRelated(ctx context.Context, q RelatedQuery, limit int) ([]models.Product, error) {
	items := []models.Product{}
	if q.empty() {
		return items, nil
	}

	overlap := r.db.Session(&gorm.Session{NewDB: true})
	first := true
	or := func(clause string, arg any) {
		if first {
			overlap = overlap.Where(clause, arg)
			first = false
			return
		}
		overlap = overlap.Or(clause, arg)
	}
	if len(q.Categories) > 0 {
		or("categories && ?::uuid[]", dbtypes.UUIDArray(q.Categories))
	}
	if len(q.Styles) > 0 {
		or("styles && ?::text[]", pq.StringArray(q.Styles))
	}
	if len(q.Colors) > 0 {
		or("colors && ?::text[]", pq.StringArray(q.Colors))
	}

	query := r.db.WithContext(ctx).
		Where("published = ?", true).
		Where(overlap)
	if q.ExcludeSlug != "" {
		query = query.Where("slug <> ?", q.ExcludeSlug)
	}
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListRecent returns the newest published products, skipping excludeSlug.
func (r *Repository) ListRecent(ctx context.Context, excludeSlug string, limit int) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("published = ?", true)
	if excludeSlug != "" {
		query = query.Where("slug <> ?", excludeSlug)
	}
	items := []models.Product{}
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListAdmin pages through every product, drafts included, newest first.
// search matches title, artist or sku.
func (r *Repository) ListAdmin(ctx context.Context, search string, page pagination.Params) ([]models.Product, int64, error) {
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Product{})
		if search != "" {
			pattern := db.ContainsPattern(search)
			query = query.Where("(title ILIKE ? OR artist ILIKE ? OR sku ILIKE ?)", pattern, pattern, pattern)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := []models.Product{}
	if err := base().
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CountByCategory counts products, published or not, that reference the
// category id.
func (r *Repository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("?::uuid = ANY(categories)", categoryID.String()).
		Count(&count).Error
	return count, err
}

// CountByStyle counts products tagged with the style name.
func (r *Repository) CountByStyle(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("? = ANY(styles)", name).
		Count(&count).Error
	return count, err
}

// CountByVariantName counts products carrying a variant group called name.
func (r *Repository) CountByVariantName(ctx context.Context, name string) (int64, error) {
	probe, err := json.Marshal([]map[string]string{{"name": name}})
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(&models.Product{}).
		Where("variants @> ?::jsonb", string(probe)).
		Count(&count).Error
	return count, err
}

// DistinctPublishedColors lists every color used by a published product.
func (r *Repository) DistinctPublishedColors(ctx context.Context) ([]string, error) {
	colors := []string{}
	if err := r.db.WithContext(ctx).Raw(distinctColorsQuery).Scan(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// ListCategoryIDsInUse returns the distinct category ids referenced by
// published products.
func (r *Repository) ListCategoryIDsInUse(ctx context.Context) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT c.id FROM products p, unnest(p.categories) AS c(id) WHERE p.published = true`).
		Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
