package pagination

// Pagination is the offset/limit request shape used by listing endpoints.
type Pagination struct {
	Page int `form:"page,default=1" validate:"gte=1"`
	Size int `form:"size,default=10" validate:"gte=1,lte=250"`
}

type PageInfo struct {
	TotalCount  int64 `json:"total_count"`
	TotalPages  int64 `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
}

func (p Pagination) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

func (p Pagination) Limit() int {
	if p.Size < 1 {
		return 10
	}
	return p.Size
}

func BuildPageInfo(totalCount int64, page Pagination) PageInfo {
	size := int64(page.Limit())
	return PageInfo{
		TotalCount:  totalCount,
		TotalPages:  (totalCount / size) + 1,
		CurrentPage: maxInt(page.Page, 1),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
