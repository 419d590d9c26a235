package controllers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
)

// parseIDList converts the string ids of a JSON body into uuids, reporting
// the first malformed entry against field.
func parseIDList(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for i, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		id, err := uuid.Parse(value)
		if err != nil {
			msg := fmt.Sprintf("%s[%d] must be a valid id", field, i)
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, msg).WithDetails(map[string]string{field: msg})
		}
		ids = append(ids, id)
	}
	return ids, nil
}
