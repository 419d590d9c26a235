package enums

// CatalogSort selects the ordering of catalog results.
type CatalogSort string

const (
	CatalogSortNewest    CatalogSort = "newest"
	CatalogSortPriceAsc  CatalogSort = "price_asc"
	CatalogSortPriceDesc CatalogSort = "price_desc"
)

var validCatalogSorts = []CatalogSort{
	CatalogSortNewest,
	CatalogSortPriceAsc,
	CatalogSortPriceDesc,
}

// String implements fmt.Stringer.
func (s CatalogSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CatalogSort.
func (s CatalogSort) IsValid() bool {
	for _, candidate := range validCatalogSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCatalogSort never fails: unknown or empty values sort newest first.
func ParseCatalogSort(value string) CatalogSort {
	for _, candidate := range validCatalogSorts {
		if string(candidate) == value {
			return candidate
		}
	}
	return CatalogSortNewest
}
