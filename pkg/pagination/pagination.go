package pagination

import (
	"errors"
	"strconv"
	"strings"
)

const (
	// DefaultPage is the first page.
	DefaultPage = 1
	// DefaultPageSize is the standard page size when none is provided.
	DefaultPageSize = 12
	// MaxPageSize caps how many rows any page can request.
	MaxPageSize = 48
	// MaxPage keeps Offset well inside int range on every platform.
	MaxPage = 1_000_000
)

// Params holds offset pagination inputs after normalization.
type Params struct {
	Page     int
	PageSize int
}

// Offset is the number of rows skipped before the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit is the page size.
func (p Params) Limit() int {
	return p.PageSize
}

// NormalizePage clamps page into [1, MaxPage]. Zero means "not provided".
func NormalizePage(page int) int {
	switch {
	case page < DefaultPage:
		return DefaultPage
	case page > MaxPage:
		return MaxPage
	default:
		return page
	}
}

// NormalizePageSize returns the default for zero and clamps everything else
// into [1, MaxPageSize].
func NormalizePageSize(size int) int {
	switch {
	case size == 0:
		return DefaultPageSize
	case size < 1:
		return 1
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}

// Parse builds normalized Params from raw query values. Values that are not
// integers are treated as absent; out of range values are clamped.
func Parse(rawPage, rawPageSize string) Params {
	return Params{
		Page:     NormalizePage(atoi(rawPage)),
		PageSize: NormalizePageSize(atoi(rawPageSize)),
	}
}

func atoi(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Atoi saturates on overflow; keep the sign so the value clamps.
		if errors.Is(err, strconv.ErrRange) {
			return n
		}
		return 0
	}
	return n
}
