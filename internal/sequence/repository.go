package sequence

import (
	"context"

	"gorm.io/gorm"
)

// nextSQL creates the counter on first use and increments it otherwise in a
// single statement, so concurrent callers never observe the same value.
const nextSQL = `INSERT INTO counters (key, seq) VALUES (?, 1)
ON CONFLICT (key) DO UPDATE SET seq = counters.seq + 1
RETURNING seq`

// Repository issues values from the counters table.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a repository to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Next atomically increments the named counter and returns the new value.
func (r *Repository) Next(ctx context.Context, key string) (int64, error) {
	var seq int64
	if err := r.db.WithContext(ctx).Raw(nextSQL, key).Scan(&seq).Error; err != nil {
		return 0, err
	}
	return seq, nil
}
