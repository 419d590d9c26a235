package products

import (
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/db"
	dbtypes "github.com/lumenarts/gallery-api/pkg/db/types"
	"github.com/lumenarts/gallery-api/pkg/enums"
)

const variantMatchClause = `EXISTS (
	SELECT 1 FROM jsonb_array_elements(variants) AS v(elem)
	WHERE v.elem->>'slug' = ? AND jsonb_exists_any(v.elem->'values', ?::text[])
)`

// catalogScope applies every CatalogFilter predicate. Predicates are ANDed;
// published is always enforced.
func catalogScope(f CatalogFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("published = ?", true)
		if f.MatchNone {
			return tx.Where("1 = 0")
		}

		if f.Search != "" {
			tx = tx.Where(searchClause(tx, f))
		}
		if len(f.Styles) > 0 {
			tx = tx.Where("styles && ?::text[]", pq.StringArray(f.Styles))
		}
		if len(f.Categories) > 0 {
			tx = tx.Where("categories && ?::uuid[]", dbtypes.UUIDArray(f.Categories))
		}
		if len(f.Colors) > 0 {
			tx = tx.Where("colors && ?::text[]", pq.StringArray(f.Colors))
		}
		if f.MinPrice != nil {
			tx = tx.Where("price >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			tx = tx.Where("price <= ?", *f.MaxPrice)
		}
		for _, vf := range f.Variants {
			tx = tx.Where(variantMatchClause, vf.Slug, pq.StringArray(vf.Values))
		}
		return tx
	}
}

// searchClause matches q against the text columns and style names, or
// against categories whose name matched q.
func searchClause(tx *gorm.DB, f CatalogFilter) *gorm.DB {
	pattern := db.ContainsPattern(f.Search)
	group := tx.Session(&gorm.Session{NewDB: true}).
		Where("title ILIKE ?", pattern).
		Or("artist ILIKE ?", pattern).
		Or("description ILIKE ?", pattern).
		Or("EXISTS (SELECT 1 FROM unnest(styles) AS s(name) WHERE s.name ILIKE ?)", pattern)
	if len(f.SearchCategoryIDs) > 0 {
		group = group.Or("categories && ?::uuid[]", dbtypes.UUIDArray(f.SearchCategoryIDs))
	}
	return group
}

func catalogOrder(sort enums.CatalogSort) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case enums.CatalogSortPriceAsc:
			tx = tx.Order("price ASC")
		case enums.CatalogSortPriceDesc:
			tx = tx.Order("price DESC")
		}
		return tx.Order("created_at DESC").Order("id DESC")
	}
}
