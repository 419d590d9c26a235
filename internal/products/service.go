package products

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/internal/sequence"
	"github.com/lumenarts/gallery-api/pkg/db"
	"github.com/lumenarts/gallery-api/pkg/db/models"
	dbtypes "github.com/lumenarts/gallery-api/pkg/db/types"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/pagination"
	"github.com/lumenarts/gallery-api/pkg/slug"
	"github.com/lumenarts/gallery-api/pkg/types"
)

// Service exposes the storefront catalog and admin product management.
type Service interface {
	ListCatalog(ctx context.Context, query url.Values) (types.Page[ProductDTO], error)
	GetPublishedBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	Related(ctx context.Context, input RelatedInput) ([]ProductDTO, error)
	ColorsInUse(ctx context.Context) ([]string, error)
	ListAdmin(ctx context.Context, search string, page pagination.Params) (types.Page[ProductDTO], error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput holds a create payload that already passed request
// validation.
type CreateProductInput struct {
	Slug             *string
	Title            string
	Artist           string
	Price            decimal.Decimal
	CompareAtPrice   *decimal.Decimal
	Description      string
	ShortDescription string
	Images           []string
	Categories       []uuid.UUID
	Styles           []string
	Colors           []string
	Size             *string
	Year             int
	Inventory        int
	Published        bool
	Variants         []VariantGroupInput
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Slug             *string
	Title            *string
	Artist           *string
	Price            *decimal.Decimal
	Description      *string
	ShortDescription *string
	Images           *[]string
	Categories       *[]uuid.UUID
	Styles           *[]string
	Colors           *[]string
	Size             *string
	Year             *int
	Inventory        *int
	Published        *bool
	Variants         *[]VariantGroupInput
}

// VariantGroupInput is a variant group as sent by the admin dashboard.
type VariantGroupInput struct {
	Name   string
	Values []string
}

type productStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Product, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListCatalog(ctx context.Context, filter CatalogFilter) ([]models.Product, int64, error)
	ListRelated(ctx context.Context, q RelatedQuery, limit int) ([]models.Product, error)
	ListRecent(ctx context.Context, excludeSlug string, limit int) ([]models.Product, error)
	ListAdmin(ctx context.Context, search string, page pagination.Params) ([]models.Product, int64, error)
	DistinctPublishedColors(ctx context.Context) ([]string, error)
}

type variantLookup interface {
	ListSlugs(ctx context.Context) ([]string, error)
	SlugsByName(ctx context.Context) (map[string]string, error)
}

type categoryMatcher interface {
	FindIDsByNameMatch(ctx context.Context, query string) ([]uuid.UUID, error)
}

type identifierMinter interface {
	NextProductIdentifiers(ctx context.Context) (sequence.Identifiers, error)
}

type service struct {
	repo       productStore
	variants   variantLookup
	categories categoryMatcher
	sequences  identifierMinter
}

// NewService constructs a product service instance.
func NewService(repo productStore, variants variantLookup, categories categoryMatcher, sequences identifierMinter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if variants == nil {
		return nil, fmt.Errorf("variant lister required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category matcher required")
	}
	if sequences == nil {
		return nil, fmt.Errorf("sequence generator required")
	}
	return &service{
		repo:       repo,
		variants:   variants,
		categories: categories,
		sequences:  sequences,
	}, nil
}

func (s *service) ListCatalog(ctx context.Context, query url.Values) (types.Page[ProductDTO], error) {
	variantSlugs, err := s.variants.ListSlugs(ctx)
	if err != nil {
		return types.Page[ProductDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list variant slugs")
	}

	filter := ParseCatalogFilter(query, variantSlugs)
	if filter.Search != "" && !filter.MatchNone {
		ids, err := s.categories.FindIDsByNameMatch(ctx, filter.Search)
		if err != nil {
			return types.Page[ProductDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "match categories")
		}
		filter.SearchCategoryIDs = ids
	}

	items, total, err := s.repo.ListCatalog(ctx, filter)
	if err != nil {
		return types.Page[ProductDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list catalog")
	}
	return types.Page[ProductDTO]{
		Items:    toProductDTOs(items),
		Total:    total,
		Page:     filter.Page.Page,
		PageSize: filter.Page.PageSize,
	}, nil
}

func (s *service) GetPublishedBySlug(ctx context.Context, productSlug string) (*ProductDTO, error) {
	product, err := s.repo.FindBySlug(ctx, productSlug, true)
	if err != nil {
		return nil, mapLookupError(err)
	}
	dto := toProductDTO(product)
	return &dto, nil
}

func (s *service) Related(ctx context.Context, input RelatedInput) ([]ProductDTO, error) {
	q := RelatedQuery{
		ExcludeSlug: input.CurrentSlug,
		Categories:  input.Categories,
		Styles:      input.Styles,
		Colors:      input.Colors,
	}

	if q.empty() && input.CurrentSlug != "" {
		current, err := s.repo.FindBySlug(ctx, input.CurrentSlug, false)
		switch {
		case err == nil:
			q.Categories = current.Categories
			q.Styles = current.Styles
			q.Colors = current.Colors
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load current product")
		}
	}

	items, err := s.repo.ListRelated(ctx, q, RelatedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list related products")
	}
	if len(items) == 0 {
		items, err = s.repo.ListRecent(ctx, input.CurrentSlug, RelatedLimit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent products")
		}
	}
	return toProductDTOs(items), nil
}

func (s *service) ColorsInUse(ctx context.Context) ([]string, error) {
	colors, err := s.repo.DistinctPublishedColors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list colors in use")
	}
	return colors, nil
}

func (s *service) ListAdmin(ctx context.Context, search string, page pagination.Params) (types.Page[ProductDTO], error) {
	items, total, err := s.repo.ListAdmin(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return types.Page[ProductDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return types.Page[ProductDTO]{
		Items:    toProductDTOs(items),
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	dto := toProductDTO(product)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	var fields pkgerrors.FieldErrors

	title := strings.TrimSpace(input.Title)
	if title == "" {
		fields.Required("title")
	}
	artist := strings.TrimSpace(input.Artist)
	if artist == "" {
		fields.Required("artist")
	}
	if input.CompareAtPrice != nil && !input.CompareAtPrice.GreaterThan(input.Price) {
		fields.Add("compareAtPrice", "compareAtPrice must be greater than price")
	}
	shortDescription := strings.TrimSpace(input.ShortDescription)
	if shortDescription == "" {
		fields.Required("shortDescription")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		fields.Required("description")
	}
	images := cleanList(input.Images)
	if len(images) == 0 {
		fields.Add("images", "at least one image is required")
	}
	categories := dedupeIDs(input.Categories)
	if len(categories) == 0 {
		fields.Add("categories", "at least one category is required")
	}
	variants, err := s.buildVariantGroups(ctx, &fields, input.Variants)
	if err != nil {
		return nil, err
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	productSlug := slug.Resolve(input.Slug, title)
	if productSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from title")
	}
	if err := s.ensureSlugAvailable(ctx, productSlug, nil); err != nil {
		return nil, err
	}

	ids, err := s.sequences.NextProductIdentifiers(ctx)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Slug:             productSlug,
		Title:            title,
		Artist:           artist,
		Price:            input.Price.Round(2),
		CompareAtPrice:   roundPtr(input.CompareAtPrice),
		Description:      description,
		ShortDescription: shortDescription,
		Images:           pq.StringArray(images),
		Categories:       dbtypes.UUIDArray(categories),
		Styles:           pq.StringArray(cleanList(input.Styles)),
		Colors:           pq.StringArray(cleanColors(input.Colors)),
		Size:             trimPtr(input.Size),
		Year:             input.Year,
		Inventory:        input.Inventory,
		Published:        input.Published,
		SKU:              ids.SKU,
		Barcode:          ids.Barcode,
		Variants:         datatypes.JSONSlice[models.VariantGroup](variants),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, mapWriteError(err, "create product")
	}

	dto := toProductDTO(product)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}

	var fields pkgerrors.FieldErrors
	titleChanged := false

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			fields.Required("title")
		}
		titleChanged = title != product.Title
		product.Title = title
	}
	if input.Artist != nil {
		product.Artist = strings.TrimSpace(*input.Artist)
		if product.Artist == "" {
			fields.Required("artist")
		}
	}
	if input.Price != nil {
		applyPriceChange(product, input.Price.Round(2))
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
		if product.Description == "" {
			fields.Required("description")
		}
	}
	if input.ShortDescription != nil {
		product.ShortDescription = strings.TrimSpace(*input.ShortDescription)
		if product.ShortDescription == "" {
			fields.Required("shortDescription")
		}
	}
	if input.Images != nil {
		images := cleanList(*input.Images)
		if len(images) == 0 {
			fields.Add("images", "at least one image is required")
		}
		product.Images = pq.StringArray(images)
	}
	if input.Categories != nil {
		categories := dedupeIDs(*input.Categories)
		if len(categories) == 0 {
			fields.Add("categories", "at least one category is required")
		}
		product.Categories = dbtypes.UUIDArray(categories)
	}
	if input.Styles != nil {
		product.Styles = pq.StringArray(cleanList(*input.Styles))
	}
	if input.Colors != nil {
		product.Colors = pq.StringArray(cleanColors(*input.Colors))
	}
	if input.Size != nil {
		product.Size = trimPtr(input.Size)
	}
	if input.Year != nil {
		product.Year = *input.Year
	}
	if input.Inventory != nil {
		product.Inventory = *input.Inventory
	}
	if input.Published != nil {
		product.Published = *input.Published
	}
	if input.Variants != nil {
		groups, err := s.buildVariantGroups(ctx, &fields, *input.Variants)
		if err != nil {
			return nil, err
		}
		product.Variants = datatypes.JSONSlice[models.VariantGroup](groups)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	explicitSlug := input.Slug != nil && strings.TrimSpace(*input.Slug) != ""
	if titleChanged || explicitSlug {
		next := slug.Resolve(input.Slug, product.Title)
		if next == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from title")
		}
		if next != product.Slug {
			if err := s.ensureSlugAvailable(ctx, next, &product.ID); err != nil {
				return nil, err
			}
			product.Slug = next
		}
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, mapWriteError(err, "update product")
	}
	dto := toProductDTO(product)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) ensureSlugAvailable(ctx context.Context, productSlug string, excludeID *uuid.UUID) error {
	exists, err := s.repo.SlugExists(ctx, productSlug, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check product slug")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "a product with this slug already exists")
	}
	return nil
}

// applyPriceChange stamps the previous price into CompareAtPrice when the
// price drops and clears it otherwise.
func applyPriceChange(product *models.Product, next decimal.Decimal) {
	current := product.Price
	if next.LessThan(current) {
		prior := current
		product.CompareAtPrice = &prior
	} else {
		product.CompareAtPrice = nil
	}
	product.Price = next
}

// buildVariantGroups attaches the slug of the matching reusable variant to
// each group so catalog filters, which are keyed by variant slug, find it.
// Names match exactly first, then case-insensitively. Groups with no
// matching variant get a slug derived from their name.
func (s *service) buildVariantGroups(ctx context.Context, fields *pkgerrors.FieldErrors, groups []VariantGroupInput) ([]models.VariantGroup, error) {
	out := make([]models.VariantGroup, 0, len(groups))
	if len(groups) == 0 {
		return out, nil
	}
	known, err := s.variants.SlugsByName(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load variant slugs")
	}
	folded := make(map[string]string, len(known))
	for name := range known {
		folded[strings.ToLower(name)] = name
	}

	for i, group := range groups {
		name := strings.TrimSpace(group.Name)
		if name == "" {
			fields.Required(fmt.Sprintf("variants[%d].name", i))
			continue
		}
		groupSlug, ok := known[name]
		if !ok {
			if canonical, found := folded[strings.ToLower(name)]; found {
				name, groupSlug, ok = canonical, known[canonical], true
			}
		}
		if !ok {
			groupSlug = slug.Make(name)
		}
		values := cleanList(group.Values)
		if values == nil {
			values = []string{}
		}
		out = append(out, models.VariantGroup{
			Name:   name,
			Slug:   groupSlug,
			Values: values,
		})
	}
	return out, nil
}

// cleanList trims entries and drops empties and duplicates, keeping the
// first occurrence.
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func cleanColors(values []string) []string {
	lowered := make([]string, 0, len(values))
	for _, v := range values {
		lowered = append(lowered, strings.ToLower(v))
	}
	return cleanList(lowered)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func roundPtr(value *decimal.Decimal) *decimal.Decimal {
	if value == nil {
		return nil
	}
	rounded := value.Round(2)
	return &rounded
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
}

func mapWriteError(err error, action string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a product with this slug, sku or barcode already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
