package controllers

import (
	"net/http"

	"github.com/lumenarts/gallery-api/api/responses"
	"github.com/lumenarts/gallery-api/api/validators"
	"github.com/lumenarts/gallery-api/internal/styles"
	"github.com/lumenarts/gallery-api/pkg/logger"
	"github.com/lumenarts/gallery-api/pkg/types"
)

type styleCreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Slug        *string `json:"slug"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url|len=0"`
	Description *string `json:"description"`
}

// styleRequest is the update body. An empty imageUrl clears the image.
type styleRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url|len=0"`
	Description *string `json:"description"`
}

func StyleList(svc styles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"styles": items})
	}
}

func StyleGet(svc styles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id", "style")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"style": item})
	}
}

func StyleCreate(svc styles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body styleCreateRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Create(r.Context(), styles.CreateStyleInput{
			Name:        body.Name,
			Slug:        body.Slug,
			ImageURL:    body.ImageURL,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, types.Payload{"style": item})
	}
}

func StyleUpdate(svc styles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id", "style")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body styleRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Update(r.Context(), id, styles.UpdateStyleInput{
			Name:        body.Name,
			Slug:        body.Slug,
			ImageURL:    body.ImageURL,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"style": item})
	}
}

func StyleDelete(svc styles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id", "style")
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
