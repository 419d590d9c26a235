package styles

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

type Service interface {
	List(ctx context.Context) ([]StyleDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*StyleDTO, error)
	Create(ctx context.Context, input CreateStyleInput) (*StyleDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateStyleInput) (*StyleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type StyleDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	ImageURL    *string   `json:"imageUrl"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateStyleInput struct {
	Name        string
	Slug        *string
	ImageURL    *string
	Description *string
}

// UpdateStyleInput leaves nil fields untouched. An empty ImageURL or
// Description clears the stored value.
type UpdateStyleInput struct {
	Name        *string
	Slug        *string
	ImageURL    *string
	Description *string
}

type styleStore interface {
	List(ctx context.Context) ([]models.Style, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Style, error)
	Exists(ctx context.Context, name, slug string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, style *models.Style) error
	Save(ctx context.Context, style *models.Style) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type productUsage interface {
	CountByStyle(ctx context.Context, name string) (int64, error)
}

type service struct {
	repo     styleStore
	products productUsage
}

func NewService(repo styleStore, products productUsage) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("style repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product usage lookup required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) List(ctx context.Context) ([]StyleDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list styles")
	}
	out := make([]StyleDTO, 0, len(items))
	for i := range items {
		out = append(out, toDTO(&items[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*StyleDTO, error) {
	style, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	dto := toDTO(style)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateStyleInput) (*StyleDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required").
			WithDetails(map[string]string{"name": "name is required"})
	}
	styleSlug := slug.Resolve(input.Slug, name)
	if styleSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from name")
	}
	if err := s.ensureAvailable(ctx, name, styleSlug, nil); err != nil {
		return nil, err
	}

	style := &models.Style{
		Name:        name,
		Slug:        styleSlug,
		ImageURL:    optional(input.ImageURL),
		Description: optional(input.Description),
	}
	if err := s.repo.Create(ctx, style); err != nil {
		return nil, mapWriteError(err, "create style")
	}
	dto := toDTO(style)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateStyleInput) (*StyleDTO, error) {
	style, err := s.repo.FindByID(ctx, id)
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
		nameChanged = name != style.Name
		style.Name = name
	}
	if nameChanged || (input.Slug != nil && strings.TrimSpace(*input.Slug) != "") {
		style.Slug = slug.Resolve(input.Slug, style.Name)
		if style.Slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from name")
		}
	}
	if input.ImageURL != nil {
		style.ImageURL = optional(input.ImageURL)
	}
	if input.Description != nil {
		style.Description = optional(input.Description)
	}
	if err := s.ensureAvailable(ctx, style.Name, style.Slug, &style.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, style); err != nil {
		return nil, mapWriteError(err, "update style")
	}
	dto := toDTO(style)
	return &dto, nil
}

// Delete refuses to remove a style whose name is still tagged on a product.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	style, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapLookupError(err)
	}
	count, err := s.products.CountByStyle(ctx, style.Name)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products for style")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "style is in use by one or more products")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete style")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "style not found")
	}
	return nil
}

func (s *service) ensureAvailable(ctx context.Context, name, styleSlug string, excludeID *uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, name, styleSlug, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check style uniqueness")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "a style with this name or slug already exists")
	}
	return nil
}

func optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "style not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load style")
}

func mapWriteError(err error, action string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a style with this name or slug already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}

func toDTO(s *models.Style) StyleDTO {
	return StyleDTO{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		ImageURL:    s.ImageURL,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
