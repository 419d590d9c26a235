package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/lumenarts/gallery-api/pkg/enums"
)

type Blog struct {
	ID          uuid.UUID                         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string                            `gorm:"column:slug;not null;uniqueIndex"`
	Title       string                            `gorm:"column:title;not null"`
	Author      string                            `gorm:"column:author;not null"`
	Excerpt     string                            `gorm:"column:excerpt;not null"`
	Image       string                            `gorm:"column:image;not null"`
	Content     datatypes.JSONSlice[ContentBlock] `gorm:"column:content;type:jsonb;not null;default:'[]'::jsonb"`
	PublishedAt time.Time                         `gorm:"column:published_at;not null"`
	Published   bool                              `gorm:"column:published;not null;default:false"`
	CreatedAt   time.Time                         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                         `gorm:"column:updated_at;autoUpdateTime"`
}

// ContentBlock is one element of a blog body. Which fields are meaningful
// depends on Type.
type ContentBlock struct {
	Type    enums.BlogBlockType `json:"type"`
	Text    string              `json:"text,omitempty"`
	Level   int                 `json:"level,omitempty"`
	Src     string              `json:"src,omitempty"`
	Alt     string              `json:"alt,omitempty"`
	Caption string              `json:"caption,omitempty"`
	Items   []string            `json:"items,omitempty"`
}
