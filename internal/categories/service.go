package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/db"
	"github.com/lumenarts/gallery-api/pkg/db/models"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/slug"
)

// Service manages categories for the admin dashboard and the storefront
// filters.
type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	ListInUse(ctx context.Context) ([]CategoryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error)
	Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateCategoryInput struct {
	Name string
	Slug *string
}

type UpdateCategoryInput struct {
	Name *string
	Slug *string
}

type categoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Exists(ctx context.Context, name, slug string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	Save(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// productUsage answers which categories products still reference.
type productUsage interface {
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	ListCategoryIDsInUse(ctx context.Context) ([]uuid.UUID, error)
}

type service struct {
	repo     categoryStore
	products productUsage
}

// NewService constructs a category service.
func NewService(repo categoryStore, products productUsage) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product usage lookup required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return toDTOs(items), nil
}

func (s *service) ListInUse(ctx context.Context) ([]CategoryDTO, error) {
	ids, err := s.products.ListCategoryIDsInUse(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list category ids in use")
	}
	items, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories in use")
	}
	return toDTOs(items), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	dto := toDTO(category)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, requiredName()
	}
	categorySlug := slug.Resolve(input.Slug, name)
	if categorySlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from name")
	}
	if err := s.ensureAvailable(ctx, name, categorySlug, nil); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: categorySlug}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, mapWriteError(err, "create category")
	}
	dto := toDTO(category)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}

	nameChanged := false
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, requiredName()
		}
		nameChanged = name != category.Name
		category.Name = name
	}
	if nameChanged || (input.Slug != nil && strings.TrimSpace(*input.Slug) != "") {
		category.Slug = slug.Resolve(input.Slug, category.Name)
		if category.Slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from name")
		}
	}
	if err := s.ensureAvailable(ctx, category.Name, category.Slug, &category.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return nil, mapWriteError(err, "update category")
	}
	dto := toDTO(category)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapLookupError(err)
	}
	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products for category")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category is in use by one or more products")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}

func (s *service) ensureAvailable(ctx context.Context, name, categorySlug string, excludeID *uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, name, categorySlug, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check category uniqueness")
	}
	if exists {
		return conflict()
	}
	return nil
}

func requiredName() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "name is required").
		WithDetails(map[string]string{"name": "name is required"})
}

func conflict() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "a category with this name or slug already exists")
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
}

func mapWriteError(err error, action string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a category with this name or slug already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}

func toDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toDTOs(items []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(items))
	for i := range items {
		out = append(out, toDTO(&items[i]))
	}
	return out
}
