package controllers

import (
	"net/http"
	"time"

	"github.com/lumenarts/gallery-api/api/responses"
	"github.com/lumenarts/gallery-api/api/validators"
	"github.com/lumenarts/gallery-api/internal/blogs"
	"github.com/lumenarts/gallery-api/pkg/db/models"
	"github.com/lumenarts/gallery-api/pkg/enums"
	"github.com/lumenarts/gallery-api/pkg/logger"
	"github.com/lumenarts/gallery-api/pkg/types"
)

type blogCreateRequest struct {
	Slug        *string               `json:"slug"`
	Title       string                `json:"title" validate:"required"`
	Author      string                `json:"author" validate:"required"`
	Excerpt     string                `json:"excerpt" validate:"required"`
	Image       string                `json:"image" validate:"required,url"`
	Content     []contentBlockRequest `json:"content" validate:"dive"`
	PublishedAt *time.Time            `json:"publishedAt"`
	Published   bool                  `json:"published"`
}

type blogUpdateRequest struct {
	Slug        *string                `json:"slug"`
	Title       *string                `json:"title"`
	Author      *string                `json:"author"`
	Excerpt     *string                `json:"excerpt"`
	Image       *string                `json:"image" validate:"omitempty,url"`
	Content     *[]contentBlockRequest `json:"content" validate:"omitempty,dive"`
	PublishedAt *time.Time             `json:"publishedAt"`
	Published   *bool                  `json:"published"`
}

// contentBlockRequest checks the shape of a block. Which fields a block
// needs depends on its type and is enforced by the blog service.
type contentBlockRequest struct {
	Type    enums.BlogBlockType `json:"type" validate:"required,oneof=paragraph heading image list"`
	Text    string              `json:"text"`
	Level   int                 `json:"level" validate:"omitempty,oneof=2 3"`
	Src     string              `json:"src" validate:"omitempty,url"`
	Alt     string              `json:"alt"`
	Caption string              `json:"caption"`
	Items   []string            `json:"items"`
}

func toContentBlocks(blocks []contentBlockRequest) []models.ContentBlock {
	out := make([]models.ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, models.ContentBlock{
			Type:    b.Type,
			Text:    b.Text,
			Level:   b.Level,
			Src:     b.Src,
			Alt:     b.Alt,
			Caption: b.Caption,
			Items:   b.Items,
		})
	}
	return out
}

func (b blogCreateRequest) toInput() blogs.CreateBlogInput {
	return blogs.CreateBlogInput{
		Slug:        b.Slug,
		Title:       b.Title,
		Author:      b.Author,
		Excerpt:     b.Excerpt,
		Image:       b.Image,
		Content:     toContentBlocks(b.Content),
		PublishedAt: b.PublishedAt,
		Published:   b.Published,
	}
}

func (b blogUpdateRequest) toInput() blogs.UpdateBlogInput {
	input := blogs.UpdateBlogInput{
		Slug:        b.Slug,
		Title:       b.Title,
		Author:      b.Author,
		Excerpt:     b.Excerpt,
		Image:       b.Image,
		PublishedAt: b.PublishedAt,
		Published:   b.Published,
	}
	if b.Content != nil {
		content := toContentBlocks(*b.Content)
		input.Content = &content
	}
	return input
}

// BlogList returns every post, drafts included, for the dashboard.
func BlogList(svc blogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.List(r.Context(), validators.ParsePage(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page.Fields())
	}
}

func BlogListPublic(svc blogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.ListPublic(r.Context(), validators.ParsePage(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page.Fields())
	}
}

func BlogPublicBySlug(svc blogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := svc.GetPublicBySlug(r.Context(), validators.SlugParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"blog": blog})
	}
}

func BlogGet(svc blogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id", "blog")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		blog, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"blog": blog})
	}
}

func BlogCreate(svc blogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body blogCreateRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		blog, err := svc.Create(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, types.Payload{"blog": blog})
	}
}

func BlogUpdate(svc blogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id", "blog")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body blogUpdateRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		blog, err := svc.Update(r.Context(), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"blog": blog})
	}
}

func BlogDelete(svc blogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id", "blog")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nil)
	}
}
