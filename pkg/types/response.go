package types

// Payload is the body of a successful response. The writer adds "ok": true
// next to these fields.
type Payload map[string]any

type ErrorEnvelope struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Page is the shape of every paginated listing.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// Fields flattens a page into response payload fields.
func (p Page[T]) Fields() Payload {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return Payload{
		"items":    items,
		"total":    p.Total,
		"page":     p.Page,
		"pageSize": p.PageSize,
	}
}
