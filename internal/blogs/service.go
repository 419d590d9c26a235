package blogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/db"
	"github.com/lumenarts/gallery-api/pkg/db/models"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/pagination"
	"github.com/lumenarts/gallery-api/pkg/slug"
	"github.com/lumenarts/gallery-api/pkg/types"
)

// Service manages blog posts for the admin dashboard and serves the public
// journal.
type Service interface {
	List(ctx context.Context, page pagination.Params) (types.Page[BlogDTO], error)
	ListPublic(ctx context.Context, page pagination.Params) (types.Page[BlogDTO], error)
	Get(ctx context.Context, id uuid.UUID) (*BlogDTO, error)
	GetPublicBySlug(ctx context.Context, slug string) (*BlogDTO, error)
	Create(ctx context.Context, input CreateBlogInput) (*BlogDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBlogInput) (*BlogDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlogDTO struct {
	ID          uuid.UUID             `json:"id"`
	Slug        string                `json:"slug"`
	Title       string                `json:"title"`
	Author      string                `json:"author"`
	Excerpt     string                `json:"excerpt"`
	Image       string                `json:"image"`
	Content     []models.ContentBlock `json:"content"`
	PublishedAt time.Time             `json:"publishedAt"`
	Published   bool                  `json:"published"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// CreateBlogInput holds the decoded create payload. PublishedAt defaults to
// the creation time.
type CreateBlogInput struct {
	Slug        *string
	Title       string
	Author      string
	Excerpt     string
	Image       string
	Content     []models.ContentBlock
	PublishedAt *time.Time
	Published   bool
}

type UpdateBlogInput struct {
	Slug        *string
	Title       *string
	Author      *string
	Excerpt     *string
	Image       *string
	Content     *[]models.ContentBlock
	PublishedAt *time.Time
	Published   *bool
}

type blogStore interface {
	List(ctx context.Context, publishedOnly bool, page pagination.Params) ([]models.Blog, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*models.Blog, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, blog *models.Blog) error
	Save(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo blogStore
	now  func() time.Time
}

func NewService(repo blogStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("blog repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) (types.Page[BlogDTO], error) {
	return s.list(ctx, false, page)
}

func (s *service) ListPublic(ctx context.Context, page pagination.Params) (types.Page[BlogDTO], error) {
	return s.list(ctx, true, page)
}

func (s *service) list(ctx context.Context, publishedOnly bool, page pagination.Params) (types.Page[BlogDTO], error) {
	items, total, err := s.repo.List(ctx, publishedOnly, page)
	if err != nil {
		return types.Page[BlogDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list blogs")
	}
	out := make([]BlogDTO, 0, len(items))
	for i := range items {
		out = append(out, toDTO(&items[i]))
	}
	return types.Page[BlogDTO]{Items: out, Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*BlogDTO, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	dto := toDTO(blog)
	return &dto, nil
}

func (s *service) GetPublicBySlug(ctx context.Context, blogSlug string) (*BlogDTO, error) {
	blog, err := s.repo.FindPublishedBySlug(ctx, blogSlug)
	if err != nil {
		return nil, mapLookupError(err)
	}
	dto := toDTO(blog)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateBlogInput) (*BlogDTO, error) {
	var fields pkgerrors.FieldErrors
	blog := &models.Blog{
		Title:     strings.TrimSpace(input.Title),
		Author:    strings.TrimSpace(input.Author),
		Excerpt:   strings.TrimSpace(input.Excerpt),
		Image:     strings.TrimSpace(input.Image),
		Published: input.Published,
	}
	requireText(&fields, "title", blog.Title)
	requireText(&fields, "author", blog.Author)
	requireText(&fields, "excerpt", blog.Excerpt)
	requireText(&fields, "image", blog.Image)

	content, err := normalizeBlocks(input.Content)
	addBlockErrors(&fields, err)
	if err := fields.Err(); err != nil {
		return nil, err
	}
	blog.Content = datatypes.JSONSlice[models.ContentBlock](content)

	blog.PublishedAt = s.now().UTC()
	if input.PublishedAt != nil {
		blog.PublishedAt = input.PublishedAt.UTC()
	}

	blog.Slug = slug.Resolve(input.Slug, blog.Title)
	if blog.Slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from title")
	}
	if err := s.ensureSlugAvailable(ctx, blog.Slug, nil); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, mapWriteError(err, "create blog")
	}
	dto := toDTO(blog)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBlogInput) (*BlogDTO, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}

	var fields pkgerrors.FieldErrors
	titleChanged := false
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		requireText(&fields, "title", title)
		titleChanged = title != blog.Title
		blog.Title = title
	}
	if input.Author != nil {
		blog.Author = strings.TrimSpace(*input.Author)
		requireText(&fields, "author", blog.Author)
	}
	if input.Excerpt != nil {
		blog.Excerpt = strings.TrimSpace(*input.Excerpt)
		requireText(&fields, "excerpt", blog.Excerpt)
	}
	if input.Image != nil {
		blog.Image = strings.TrimSpace(*input.Image)
		requireText(&fields, "image", blog.Image)
	}
	if input.Content != nil {
		content, err := normalizeBlocks(*input.Content)
		addBlockErrors(&fields, err)
		blog.Content = datatypes.JSONSlice[models.ContentBlock](content)
	}
	if input.PublishedAt != nil {
		blog.PublishedAt = input.PublishedAt.UTC()
	}
	if input.Published != nil {
		blog.Published = *input.Published
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if titleChanged || (input.Slug != nil && strings.TrimSpace(*input.Slug) != "") {
		next := slug.Resolve(input.Slug, blog.Title)
		if next == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from title")
		}
		if next != blog.Slug {
			if err := s.ensureSlugAvailable(ctx, next, &blog.ID); err != nil {
				return nil, err
			}
			blog.Slug = next
		}
	}

	if err := s.repo.Save(ctx, blog); err != nil {
		return nil, mapWriteError(err, "update blog")
	}
	dto := toDTO(blog)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete blog")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
	}
	return nil
}

func (s *service) ensureSlugAvailable(ctx context.Context, blogSlug string, excludeID *uuid.UUID) error {
	exists, err := s.repo.SlugExists(ctx, blogSlug, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check blog slug")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "a blog post with this slug already exists")
	}
	return nil
}

func requireText(fields *pkgerrors.FieldErrors, field, value string) {
	if value == "" {
		fields.Required(field)
	}
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load blog")
}

func mapWriteError(err error, action string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a blog post with this slug already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}

func toDTO(b *models.Blog) BlogDTO {
	content := []models.ContentBlock(b.Content)
	if content == nil {
		content = []models.ContentBlock{}
	}
	return BlogDTO{
		ID:          b.ID,
		Slug:        b.Slug,
		Title:       b.Title,
		Author:      b.Author,
		Excerpt:     b.Excerpt,
		Image:       b.Image,
		Content:     content,
		PublishedAt: b.PublishedAt,
		Published:   b.Published,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
