package datasource

import "fmt"

// Page describes a window of an ordered collection
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// String implements fmt.Stringer
func (p Page) String() string {
	return fmt.Sprintf("offset=%d limit=%d", p.Offset, p.Limit)
}

// PaginatedCollection is one page of values plus the metadata needed to
// request the next one
type PaginatedCollection[V any] struct {
	Items   []V  `json:"items"`
	Page    Page `json:"page"`
	HasMore bool `json:"has_more"`
}

// NewPaginatedCollection creates a collection for the given page. Items
// beyond the page limit are dropped.
func NewPaginatedCollection[V any](page Page, items []V, hasMore bool) PaginatedCollection[V] {
	if page.Limit >= 0 && len(items) > page.Limit {
		items = items[:page.Limit]
	}
	if items == nil {
		items = make([]V, 0)
	}
	return PaginatedCollection[V]{
		Items:   items,
		Page:    page,
		HasMore: hasMore,
	}
}

// Len returns the number of items in the page
func (c PaginatedCollection[V]) Len() int {
	return len(c.Items)
}
