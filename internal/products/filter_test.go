package products

import (
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/lumenarts/gallery-api/pkg/enums"
)

func TestParseCatalogFilterDefaults(t *testing.T) {
	f := ParseCatalogFilter(url.Values{}, nil)

	if f.Page.Page != 1 || f.Page.PageSize != 12 {
		t.Fatalf("unexpected paging %+v", f.Page)
	}
	if f.Sort != enums.CatalogSortNewest {
		t.Fatalf("expected newest sort, got %s", f.Sort)
	}
	if f.Search != "" || f.MatchNone || f.MinPrice != nil || f.MaxPrice != nil {
		t.Fatalf("expected empty filter, got %+v", f)
	}
	if len(f.Styles) != 0 || len(f.Categories) != 0 || len(f.Colors) != 0 || len(f.Variants) != 0 {
		t.Fatalf("expected no list filters, got %+v", f)
	}
}

func TestParseCatalogFilterClampsPaging(t *testing.T) {
	cases := []struct {
		page, size       string
		wantPage, wantSz int
	}{
		{"0", "1000", 1, 48},
		{"-3", "-1", 1, 1},
		{"abc", "xyz", 1, 12},
		{"4", "24", 4, 24},
	}
	for _, tc := range cases {
		f := ParseCatalogFilter(url.Values{"page": {tc.page}, "pageSize": {tc.size}}, nil)
		if f.Page.Page != tc.wantPage || f.Page.PageSize != tc.wantSz {
			t.Fatalf("page=%q pageSize=%q: got %+v", tc.page, tc.size, f.Page)
		}
	}
}

func TestParseCatalogFilterLists(t *testing.T) {
	catID := uuid.New()
	f := ParseCatalogFilter(url.Values{
		"q":        {"  ocean  "},
		"style":    {"Abstract, Modern,,Abstract"},
		"category": {catID.String() + ",not-a-uuid"},
		"color":    {"Blue,RED"},
		"minPrice": {"10.5"},
		"maxPrice": {"nope"},
		"sort":     {"price_desc"},
	}, nil)

	if f.Search != "ocean" {
		t.Fatalf("expected trimmed search, got %q", f.Search)
	}
	if len(f.Styles) != 2 || f.Styles[0] != "Abstract" || f.Styles[1] != "Modern" {
		t.Fatalf("unexpected styles %v", f.Styles)
	}
	if len(f.Categories) != 1 || f.Categories[0] != catID || f.MatchNone {
		t.Fatalf("unexpected categories %v (matchNone=%v)", f.Categories, f.MatchNone)
	}
	if len(f.Colors) != 2 || f.Colors[0] != "blue" || f.Colors[1] != "red" {
		t.Fatalf("expected lower-cased colors, got %v", f.Colors)
	}
	if f.MinPrice == nil || f.MinPrice.String() != "10.5" {
		t.Fatalf("unexpected min price %v", f.MinPrice)
	}
	if f.MaxPrice != nil {
		t.Fatalf("expected unparsable max price to be ignored, got %v", f.MaxPrice)
	}
	if f.Sort != enums.CatalogSortPriceDesc {
		t.Fatalf("unexpected sort %s", f.Sort)
	}
}

func TestParseCatalogFilterInvalidCategoriesMatchNothing(t *testing.T) {
	f := ParseCatalogFilter(url.Values{"category": {"abc,def"}}, nil)
	if !f.MatchNone {
		t.Fatal("expected filter with only malformed category ids to match nothing")
	}
}

func TestParseCatalogFilterVariants(t *testing.T) {
	f := ParseCatalogFilter(url.Values{
		"frame":  {"Black, Oak"},
		"finish": {""},
		"size":   {"Large"},
	}, []string{"size", "frame", "finish", "medium"})

	if len(f.Variants) != 2 {
		t.Fatalf("expected two variant filters, got %+v", f.Variants)
	}
	if f.Variants[0].Slug != "frame" || len(f.Variants[0].Values) != 2 || f.Variants[0].Values[1] != "Oak" {
		t.Fatalf("unexpected frame filter %+v", f.Variants[0])
	}
	if f.Variants[1].Slug != "size" || f.Variants[1].Values[0] != "Large" {
		t.Fatalf("unexpected size filter %+v", f.Variants[1])
	}
}

func TestParseCatalogFilterUnknownSortFallsBack(t *testing.T) {
	f := ParseCatalogFilter(url.Values{"sort": {"popularity"}}, nil)
	if f.Sort != enums.CatalogSortNewest {
		t.Fatalf("expected newest, got %s", f.Sort)
	}
}

func TestParseRelatedInput(t *testing.T) {
	catID := uuid.New()
	in := ParseRelatedInput(url.Values{
		"currentSlug": {"blue-horizon"},
		"categories":  {catID.String() + ",bad"},
		"styles":      {"Abstract"},
		"colors":      {"Blue"},
	})
	if in.CurrentSlug != "blue-horizon" {
		t.Fatalf("unexpected slug %q", in.CurrentSlug)
	}
	if len(in.Categories) != 1 || in.Categories[0] != catID {
		t.Fatalf("unexpected categories %v", in.Categories)
	}
	if len(in.Styles) != 1 || len(in.Colors) != 1 || in.Colors[0] != "blue" {
		t.Fatalf("unexpected taxonomy %+v", in)
	}
}
