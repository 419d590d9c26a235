package pagination

import "testing"

func TestParseClampsOutOfRangeValues(t *testing.T) {
	cases := []struct {
		name     string
		page     string
		pageSize string
		want     Params
	}{
		{name: "defaults", want: Params{Page: 1, PageSize: 12}},
		{name: "page zero", page: "0", pageSize: "12", want: Params{Page: 1, PageSize: 12}},
		{name: "negative page", page: "-4", want: Params{Page: 1, PageSize: 12}},
		{name: "huge page size", page: "2", pageSize: "1000", want: Params{Page: 2, PageSize: 48}},
		{name: "negative page size", pageSize: "-1", want: Params{Page: 1, PageSize: 1}},
		{name: "zero page size", pageSize: "0", want: Params{Page: 1, PageSize: 12}},
		{name: "garbage", page: "abc", pageSize: "x", want: Params{Page: 1, PageSize: 12}},
		{name: "in range", page: "3", pageSize: "24", want: Params{Page: 3, PageSize: 24}},
		{name: "page past cap", page: "1000001", pageSize: "12", want: Params{Page: MaxPage, PageSize: 12}},
		{name: "max int page", page: "9223372036854775807", pageSize: "48", want: Params{Page: MaxPage, PageSize: 48}},
		{name: "overflowing page", page: "99999999999999999999", want: Params{Page: MaxPage, PageSize: 12}},
		{name: "overflowing page size", pageSize: "99999999999999999999", want: Params{Page: 1, PageSize: 48}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.page, tc.pageSize)
			if got != tc.want {
				t.Fatalf("Parse(%q, %q) = %+v, want %+v", tc.page, tc.pageSize, got, tc.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, PageSize: 12}
	if p.Offset() != 24 {
		t.Fatalf("expected offset 24, got %d", p.Offset())
	}
	if p.Limit() != 12 {
		t.Fatalf("expected limit 12, got %d", p.Limit())
	}
}

func TestOffsetStaysNonNegativeForHugePages(t *testing.T) {
	p := Parse("9223372036854775807", "48")
	if p.Offset() < 0 {
		t.Fatalf("offset overflowed: %d", p.Offset())
	}
	if want := (MaxPage - 1) * MaxPageSize; p.Offset() != want {
		t.Fatalf("expected offset %d, got %d", want, p.Offset())
	}
}
