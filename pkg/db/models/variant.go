package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Variant is a reusable option group (Frame, Size, Finish) that admins pick
// from when attaching variant groups to a product.
type Variant struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string         `gorm:"column:name;not null;uniqueIndex"`
	Slug      string         `gorm:"column:slug;not null;uniqueIndex"`
	Values    pq.StringArray `gorm:"column:values;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
