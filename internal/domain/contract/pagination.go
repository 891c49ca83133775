package contract

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Skip returns the number of documents to skip for the page.
func (p Pagination) Skip() int64 {
	if p.Page < 1 {
		return 0
	}
	return int64((p.Page - 1) * p.PageSize)
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPaginationMeta builds the meta block for a listing response.
func NewPaginationMeta(p Pagination, total int64) PaginationMeta {
	pages := 0
	if p.PageSize > 0 {
		pages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}
	return PaginationMeta{
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
		TotalItems:  total,
		TotalPages:  pages,
		HasNext:     p.Page < pages,
		HasPrevious: p.Page > 1,
	}
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize applies the default page and page size and caps the page size.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}
