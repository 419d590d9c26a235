package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/lumenarts/gallery-api/pkg/enums"
)

// Setting is a singleton document per key. Value holds the JSON encoded
// settings object for that key.
type Setting struct {
	Key       enums.SettingKey `gorm:"column:key;type:text;primaryKey"`
	Value     datatypes.JSON   `gorm:"column:value;type:jsonb;not null"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
