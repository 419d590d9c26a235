package models

// Counter is a named monotonically increasing sequence.
type Counter struct {
	Key string `gorm:"column:key;type:text;primaryKey"`
	Seq int64  `gorm:"column:seq;not null;default:0"`
}
