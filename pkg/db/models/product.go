package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	dbtypes "github.com/lumenarts/gallery-api/pkg/db/types"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a single artwork listed in the catalog. Taxonomy is stored
// denormalized: category ids, style names, color names and variant groups
// live on the row itself.
type Product struct {
	ID               uuid.UUID                         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug             string                            `gorm:"column:slug;not null;uniqueIndex"`
	Title            string                            `gorm:"column:title;not null"`
	Artist           string                            `gorm:"column:artist;not null"`
	Price            decimal.Decimal                   `gorm:"column:price;type:numeric(12,2);not null"`
	CompareAtPrice   *decimal.Decimal                  `gorm:"column:compare_at_price;type:numeric(12,2)"`
	Description      string                            `gorm:"column:description;not null"`
	ShortDescription string                            `gorm:"column:short_description;not null"`
	Images           pq.StringArray                    `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Categories       dbtypes.UUIDArray                 `gorm:"column:categories;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	Styles           pq.StringArray                    `gorm:"column:styles;type:text[];not null;default:ARRAY[]::text[]"`
	Colors           pq.StringArray                    `gorm:"column:colors;type:text[];not null;default:ARRAY[]::text[]"`
	Size             *string                           `gorm:"column:size"`
	Year             int                               `gorm:"column:year;not null"`
	Inventory        int                               `gorm:"column:inventory;not null;default:0"`
	Published        bool                              `gorm:"column:published;not null;default:false"`
	SKU              string                            `gorm:"column:sku;not null;uniqueIndex"`
	Barcode          string                            `gorm:"column:barcode;not null;uniqueIndex"`
	Variants         datatypes.JSONSlice[VariantGroup] `gorm:"column:variants;type:jsonb;not null;default:'[]'::jsonb"`
	CreatedAt        time.Time                         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                         `gorm:"column:updated_at;autoUpdateTime"`
}

// VariantGroup is one option group offered on a product, e.g. Frame with
// values [Black, Oak].
type VariantGroup struct {
	Name   string   `json:"name"`
	Slug   string   `json:"slug"`
	Values []string `json:"values"`
}
