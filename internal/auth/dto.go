package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumenarts/gallery-api/pkg/db/models"
	"github.com/lumenarts/gallery-api/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminDTO is the admin identity returned by login and me.
type AdminDTO struct {
	ID    uuid.UUID  `json:"id"`
	Email string     `json:"email"`
	Role  enums.Role `json:"role"`
}

// LoginResult carries the signed token for the session cookie. The token
// itself is never written to a response body.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     AdminDTO
}

func adminFromModel(a *models.Admin) AdminDTO {
	return AdminDTO{ID: a.ID, Email: a.Email, Role: enums.RoleAdmin}
}
