package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lumenarts/gallery-api/pkg/db/models"
)

// ProductDTO is the JSON shape of a product on both storefront and admin
// responses.
type ProductDTO struct {
	ID               uuid.UUID        `json:"id"`
	Slug             string           `json:"slug"`
	Title            string           `json:"title"`
	Artist           string           `json:"artist"`
	Price            decimal.Decimal  `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compareAtPrice"`
	OnSale           bool             `json:"onSale"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription"`
	Images           []string         `json:"images"`
	Categories       []uuid.UUID      `json:"categories"`
	Styles           []string         `json:"styles"`
	Colors           []string         `json:"colors"`
	Size             *string          `json:"size"`
	Year             int              `json:"year"`
	Inventory        int              `json:"inventory"`
	Published        bool             `json:"published"`
	SKU              string           `json:"sku"`
	Barcode          string           `json:"barcode"`
	Variants         []VariantGroup   `json:"variants"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// VariantGroup is one option group on a product.
type VariantGroup struct {
	Name   string   `json:"name"`
	Slug   string   `json:"slug"`
	Values []string `json:"values"`
}

func toProductDTO(p *models.Product) ProductDTO {
	variants := make([]VariantGroup, 0, len(p.Variants))
	for _, v := range p.Variants {
		values := v.Values
		if values == nil {
			values = []string{}
		}
		variants = append(variants, VariantGroup{Name: v.Name, Slug: v.Slug, Values: values})
	}

	return ProductDTO{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		Artist:           p.Artist,
		Price:            p.Price,
		CompareAtPrice:   p.CompareAtPrice,
		OnSale:           p.CompareAtPrice != nil && p.CompareAtPrice.GreaterThan(p.Price),
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Images:           nonNil([]string(p.Images)),
		Categories:       nonNilIDs([]uuid.UUID(p.Categories)),
		Styles:           nonNil([]string(p.Styles)),
		Colors:           nonNil([]string(p.Colors)),
		Size:             p.Size,
		Year:             p.Year,
		Inventory:        p.Inventory,
		Published:        p.Published,
		SKU:              p.SKU,
		Barcode:          p.Barcode,
		Variants:         variants,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toProductDTOs(items []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(items))
	for i := range items {
		out = append(out, toProductDTO(&items[i]))
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilIDs(values []uuid.UUID) []uuid.UUID {
	if values == nil {
		return []uuid.UUID{}
	}
	return values
}
