package variants

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/db"
	"github.com/lumenarts/gallery-api/pkg/db/models"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/slug"
)

type Service interface {
	List(ctx context.Context) ([]VariantDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*VariantDTO, error)
	Create(ctx context.Context, input CreateVariantInput) (*VariantDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVariantInput) (*VariantDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VariantDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Values    []string  `json:"values"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateVariantInput struct {
	Name   string
	Slug   *string
	Values []string
}

type UpdateVariantInput struct {
	Name   *string
	Slug   *string
	Values *[]string
}

type variantStore interface {
	List(ctx context.Context) ([]models.Variant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	Exists(ctx context.Context, name, slug string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, variant *models.Variant) error
	Save(ctx context.Context, variant *models.Variant) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type productUsage interface {
	CountByVariantName(ctx context.Context, name string) (int64, error)
}

type service struct {
	repo     variantStore
	products productUsage
}

func NewService(repo variantStore, products productUsage) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("variant repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product usage lookup required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) List(ctx context.Context) ([]VariantDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list variants")
	}
	out := make([]VariantDTO, 0, len(items))
	for i := range items {
		out = append(out, toDTO(&items[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*VariantDTO, error) {
	variant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	dto := toDTO(variant)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateVariantInput) (*VariantDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required").
			WithDetails(map[string]string{"name": "name is required"})
	}
	variantSlug := slug.Resolve(input.Slug, name)
	if variantSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from name")
	}
	if err := s.ensureAvailable(ctx, name, variantSlug, nil); err != nil {
		return nil, err
	}

	variant := &models.Variant{
		Name:   name,
		Slug:   variantSlug,
		Values: pq.StringArray(DedupeValues(input.Values)),
	}
	if err := s.repo.Create(ctx, variant); err != nil {
		return nil, mapWriteError(err, "create variant")
	}
	dto := toDTO(variant)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateVariantInput) (*VariantDTO, error) {
	variant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}

	nameChanged := false
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required").
				WithDetails(map[string]string{"name": "name is required"})
		}
		nameChanged = name != variant.Name
		variant.Name = name
	}
	if nameChanged || (input.Slug != nil && strings.TrimSpace(*input.Slug) != "") {
		variant.Slug = slug.Resolve(input.Slug, variant.Name)
		if variant.Slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from name")
		}
	}
	if input.Values != nil {
		variant.Values = pq.StringArray(DedupeValues(*input.Values))
	}
	if err := s.ensureAvailable(ctx, variant.Name, variant.Slug, &variant.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, variant); err != nil {
		return nil, mapWriteError(err, "update variant")
	}
	dto := toDTO(variant)
	return &dto, nil
}

// Delete refuses to remove a variant whose name is still used by a product
// variant group.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	variant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapLookupError(err)
	}
	count, err := s.products.CountByVariantName(ctx, variant.Name)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products for variant")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "variant is in use by one or more products")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete variant")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	return nil
}

func (s *service) ensureAvailable(ctx context.Context, name, variantSlug string, excludeID *uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, name, variantSlug, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check variant uniqueness")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "a variant with this name or slug already exists")
	}
	return nil
}

// DedupeValues trims values and drops empties and repeats, keeping the first
// occurrence of each.
func DedupeValues(values []string) []string {
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

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load variant")
}

func mapWriteError(err error, action string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a variant with this name or slug already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}

func toDTO(v *models.Variant) VariantDTO {
	values := []string(v.Values)
	if values == nil {
		values = []string{}
	}
	return VariantDTO{
		ID:        v.ID,
		Name:      v.Name,
		Slug:      v.Slug,
		Values:    values,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
