package domain

// Page is the pagination envelope returned by every listing operation.
type Page[T any] struct {
	Data        []T   `json:"data"`
	TotalCount  int64 `json:"totalCount"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage builds a Page enforcing the pagination invariants:
// totalPages = ceil(totalCount/limit), hasNextPage = page < totalPages,
// hasPrevPage = page > 1.
func NewPage[T any](data []T, totalCount int64, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:        data,
		TotalCount:  totalCount,
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// MapPage rebuilds a page around transformed records, keeping the counters.
func MapPage[T, U any](p Page[T], f func(T) U) Page[U] {
	out := make([]U, 0, len(p.Data))
	for _, item := range p.Data {
		out = append(out, f(item))
	}
	return Page[U]{
		Data:        out,
		TotalCount:  p.TotalCount,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
	}
}
