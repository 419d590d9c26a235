package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lumenarts/gallery-api/api/responses"
	"github.com/lumenarts/gallery-api/api/validators"
	productsvc "github.com/lumenarts/gallery-api/internal/products"
	"github.com/lumenarts/gallery-api/pkg/logger"
	"github.com/lumenarts/gallery-api/pkg/types"
)

type productCreateRequest struct {
	Slug             *string               `json:"slug"`
	Title            string                `json:"title" validate:"required"`
	Artist           string                `json:"artist" validate:"required"`
	Price            *decimal.Decimal      `json:"price" validate:"required,min=0"`
	CompareAtPrice   *decimal.Decimal      `json:"compareAtPrice" validate:"omitempty,min=0"`
	Description      string                `json:"description" validate:"required"`
	ShortDescription string                `json:"shortDescription" validate:"required"`
	Images           []string              `json:"images" validate:"required,min=1,dive,url"`
	Categories       []string              `json:"categories" validate:"required,min=1"`
	Styles           []string              `json:"styles"`
	Colors           []string              `json:"colors"`
	Size             *string               `json:"size"`
	Year             *int                  `json:"year" validate:"required,min=1"`
	Inventory        *int                  `json:"inventory" validate:"required,min=0"`
	Published        bool                  `json:"published"`
	Variants         []variantGroupRequest `json:"variants" validate:"dive"`
}

// productUpdateRequest leaves absent fields untouched. Present fields follow
// the same rules as on create.
type productUpdateRequest struct {
	Slug             *string                `json:"slug"`
	Title            *string                `json:"title"`
	Artist           *string                `json:"artist"`
	Price            *decimal.Decimal       `json:"price" validate:"omitempty,min=0"`
	Description      *string                `json:"description"`
	ShortDescription *string                `json:"shortDescription"`
	Images           *[]string              `json:"images" validate:"omitempty,min=1,dive,url"`
	Categories       *[]string              `json:"categories" validate:"omitempty,min=1"`
	Styles           *[]string              `json:"styles"`
	Colors           *[]string              `json:"colors"`
	Size             *string                `json:"size"`
	Year             *int                   `json:"year" validate:"omitempty,min=1"`
	Inventory        *int                   `json:"inventory" validate:"omitempty,min=0"`
	Published        *bool                  `json:"published"`
	Variants         *[]variantGroupRequest `json:"variants" validate:"omitempty,dive"`
}

type variantGroupRequest struct {
	Name   string   `json:"name" validate:"required"`
	Values []string `json:"values"`
}

func toVariantGroups(groups []variantGroupRequest) []productsvc.VariantGroupInput {
	out := make([]productsvc.VariantGroupInput, 0, len(groups))
	for _, v := range groups {
		out = append(out, productsvc.VariantGroupInput{Name: v.Name, Values: v.Values})
	}
	return out
}

func (p productCreateRequest) toInput() (productsvc.CreateProductInput, error) {
	input := productsvc.CreateProductInput{
		Slug:             p.Slug,
		Title:            p.Title,
		Artist:           p.Artist,
		Price:            *p.Price,
		CompareAtPrice:   p.CompareAtPrice,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Images:           p.Images,
		Styles:           p.Styles,
		Colors:           p.Colors,
		Size:             p.Size,
		Year:             *p.Year,
		Inventory:        *p.Inventory,
		Published:        p.Published,
		Variants:         toVariantGroups(p.Variants),
	}
	ids, err := parseIDList("categories", p.Categories)
	if err != nil {
		return input, err
	}
	input.Categories = ids
	return input, nil
}

func (p productUpdateRequest) toInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Slug:             p.Slug,
		Title:            p.Title,
		Artist:           p.Artist,
		Price:            p.Price,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Images:           p.Images,
		Styles:           p.Styles,
		Colors:           p.Colors,
		Size:             p.Size,
		Year:             p.Year,
		Inventory:        p.Inventory,
		Published:        p.Published,
	}
	if p.Variants != nil {
		groups := toVariantGroups(*p.Variants)
		input.Variants = &groups
	}
	if p.Categories != nil {
		ids, err := parseIDList("categories", *p.Categories)
		if err != nil {
			return input, err
		}
		input.Categories = &ids
	}
	return input, nil
}

// ProductCatalog serves the public, filtered catalog listing.
func ProductCatalog(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.ListCatalog(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page.Fields())
	}
}

func ProductBySlug(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.GetPublishedBySlug(r.Context(), validators.SlugParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"product": product})
	}
}

func ProductRelated(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Related(r.Context(), productsvc.ParseRelatedInput(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"items": items})
	}
}

func ProductColorsInUse(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colors, err := svc.ColorsInUse(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"colors": colors})
	}
}

// AdminProductList lists drafts and published products for the dashboard.
func AdminProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := strings.TrimSpace(r.URL.Query().Get("q"))
		page, err := svc.ListAdmin(r.Context(), search, validators.ParsePage(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page.Fields())
	}
}

func AdminProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id", "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"product": product})
	}
}

func AdminProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body productCreateRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, types.Payload{"product": product})
	}
}

func AdminProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id", "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body productUpdateRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"product": product})
	}
}

func AdminProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id", "product")
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
