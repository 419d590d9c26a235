package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/pagination"
)

// ParsePage reads page/pageSize from the query string. Out of range values
// are clamped, never rejected.
func ParsePage(r *http.Request) pagination.Params {
	q := r.URL.Query()
	return pagination.Parse(q.Get("page"), q.Get("pageSize"))
}

// ParseUUIDParam reads a chi URL param that must be an id. A malformed id can
// never match a row, so it is reported as not found.
func ParseUUIDParam(r *http.Request, name, resource string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, resource+" not found")
	}
	return id, nil
}

// SlugParam returns the trimmed, lower-cased slug URL param.
func SlugParam(r *http.Request, name string) string {
	return strings.ToLower(strings.TrimSpace(chi.URLParam(r, name)))
}
