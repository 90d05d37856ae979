package assets

const (
	// DefaultPage is the first page; pages are 1-based.
	DefaultPage = 1
	// DefaultLimit is the page size used when none is given.
	DefaultLimit = 50
)

// Pagination describes where a page sits in a result set.
type Pagination struct {
	Page  int
	Limit int
	Total int
}

// Pagination returns the position of this page given the request parameters.
func (p *PageResult) Pagination(page, limit int) Pagination {
	return Pagination{Page: page, Limit: limit, Total: p.TotalFilterCount}
}

// TotalPages is ceil(Total / Limit), or 0 when Limit is not positive.
func (p Pagination) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// HasNext reports whether results exist beyond this page.
func (p Pagination) HasNext() bool {
	return p.Total > p.Page*p.Limit
}

// NextPage is the page number to request next.
func (p Pagination) NextPage() int {
	return p.Page + 1
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return page, limit
}
