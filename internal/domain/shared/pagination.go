package shared

// Filter is the paging and free-text part of a list query.
type Filter struct {
	Page     int
	PageSize int
	Search   string
}

// Offset is the number of rows skipped before Page.
func (f Filter) Offset() int {
	if f.Page < 1 || f.PageSize < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Paginated is one page of a list plus the total row count.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	p := Paginated[T]{Items: items, Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		p.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return p
}
