package middleware

import (
	"fmt"
	"net/http"

	"github.com/lumenarts/gallery-api/api/responses"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/logger"
)

// Recoverer converts a handler panic into the 500 envelope. The panic value
// goes to the log with a stack; clients only see the generic message.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					recoverPanic(w, r, logg, rec)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func recoverPanic(w http.ResponseWriter, r *http.Request, logg *logger.Logger, rec any) {
	// net/http aborts the connection on this sentinel; keep that behaviour
	if rec == http.ErrAbortHandler {
		panic(rec)
	}
	cause, ok := rec.(error)
	if !ok {
		cause = fmt.Errorf("%v", rec)
	}
	responses.WriteError(r.Context(), logg, w,
		pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("recovered panic in %s %s: %w", r.Method, r.URL.Path, cause), "panic"))
}
