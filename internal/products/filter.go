package products

import (
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lumenarts/gallery-api/pkg/enums"
	"github.com/lumenarts/gallery-api/pkg/pagination"
)

// CatalogFilter is the normalized form of a storefront catalog request.
// Every populated field narrows the result set; published is always implied.
type CatalogFilter struct {
	Search            string
	SearchCategoryIDs []uuid.UUID
	Styles            []string
	Categories        []uuid.UUID
	Colors            []string
	MinPrice          *decimal.Decimal
	MaxPrice          *decimal.Decimal
	Variants          []VariantFilter
	Sort              enums.CatalogSort
	Page              pagination.Params

	// MatchNone is set when a supplied filter can never match, e.g. a
	// category list made only of malformed ids.
	MatchNone bool
}

// VariantFilter requires a product variant group with Slug offering at
// least one of Values.
type VariantFilter struct {
	Slug   string
	Values []string
}

// ParseCatalogFilter reads catalog query parameters. variantSlugs lists the
// known variant slugs; each one present as a query parameter becomes a
// variant constraint.
func ParseCatalogFilter(values url.Values, variantSlugs []string) CatalogFilter {
	f := CatalogFilter{
		Search: strings.TrimSpace(values.Get("q")),
		Styles: splitList(values.Get("style")),
		Colors: lowerAll(splitList(values.Get("color"))),
		Sort:   enums.ParseCatalogSort(strings.TrimSpace(values.Get("sort"))),
		Page:   pagination.Parse(values.Get("page"), values.Get("pageSize")),
	}

	if rawCategories := splitList(values.Get("category")); len(rawCategories) > 0 {
		f.Categories = parseUUIDs(rawCategories)
		if len(f.Categories) == 0 {
			f.MatchNone = true
		}
	}

	f.MinPrice = parseDecimal(values.Get("minPrice"))
	f.MaxPrice = parseDecimal(values.Get("maxPrice"))

	slugs := append([]string(nil), variantSlugs...)
	sort.Strings(slugs)
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		requested := splitList(values.Get(slug))
		if len(requested) == 0 {
			continue
		}
		f.Variants = append(f.Variants, VariantFilter{Slug: slug, Values: requested})
	}

	return f
}

// splitList splits a comma separated parameter, trimming entries and
// dropping empties and duplicates while keeping order.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func lowerAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}

func parseUUIDs(values []string) []uuid.UUID {
	var out []uuid.UUID
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

func parseDecimal(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// RelatedInput is the taxonomy a related-products lookup starts from.
type RelatedInput struct {
	CurrentSlug string
	Categories  []uuid.UUID
	Styles      []string
	Colors      []string
}

// ParseRelatedInput reads currentSlug and the comma separated categories,
// styles and colors parameters. Malformed category ids are dropped.
func ParseRelatedInput(values url.Values) RelatedInput {
	return RelatedInput{
		CurrentSlug: strings.TrimSpace(values.Get("currentSlug")),
		Categories:  parseUUIDs(splitList(values.Get("categories"))),
		Styles:      splitList(values.Get("styles")),
		Colors:      lowerAll(splitList(values.Get("colors"))),
	}
}
