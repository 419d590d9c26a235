package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/config"
	"github.com/lumenarts/gallery-api/pkg/db/models"
	"github.com/lumenarts/gallery-api/pkg/logger"
	"github.com/lumenarts/gallery-api/pkg/security"
)

// BootstrapResult reports what EnsureAdmin changed.
type BootstrapResult string

const (
	BootstrapCreated   BootstrapResult = "created"
	BootstrapRotated   BootstrapResult = "rotated"
	BootstrapUnchanged BootstrapResult = "unchanged"
)

type adminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// EnsureAdmin makes sure the configured admin exists and that its stored
// hash matches the configured password under the current argon parameters.
func EnsureAdmin(ctx context.Context, repo adminStore, admin config.AdminConfig, passwords config.PasswordConfig, logg *logger.Logger) (BootstrapResult, error) {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		return "", fmt.Errorf("admin email and password are required")
	}
	if logg != nil {
		ctx = logg.WithField(ctx, "admin_email", email)
	}

	existing, err := repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := security.HashPassword(admin.Password, passwords)
		if err != nil {
			return "", fmt.Errorf("hash admin password: %w", err)
		}
		if err := repo.Create(ctx, &models.Admin{Email: email, PasswordHash: hash}); err != nil {
			return "", fmt.Errorf("create admin: %w", err)
		}
		if logg != nil {
			logg.Info(ctx, "bootstrap admin created")
		}
		return BootstrapCreated, nil
	case err != nil:
		return "", fmt.Errorf("load admin: %w", err)
	}

	matches, err := security.VerifyPassword(admin.Password, existing.PasswordHash)
	if err == nil && matches && !security.NeedsRehash(existing.PasswordHash, passwords) {
		return BootstrapUnchanged, nil
	}

	hash, err := security.HashPassword(admin.Password, passwords)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	if err := repo.UpdatePasswordHash(ctx, existing.ID, hash); err != nil {
		return "", fmt.Errorf("rotate admin password: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "bootstrap admin password rotated")
	}
	return BootstrapRotated, nil
}
