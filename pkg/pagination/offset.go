package pagination

const (
	PageDefaultSize = 20
	PageMaxSize     = 100
)

type OffsetRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// Normalize clamps the page to at least 1 and the size to [1, PageMaxSize].
func (r *OffsetRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
}

func (r OffsetRequest) Offset() int {
	return (r.Page - 1) * r.Size
}

type OffsetResult[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	HasMore bool  `json:"has_more"`
}

// Slice returns the requested page of an already ordered, fully loaded list.
func Slice[T any](items []T, req OffsetRequest) *OffsetResult[T] {
	req.Normalize()

	start := min(req.Offset(), len(items))
	end := min(start+req.Size, len(items))

	page := items[start:end]
	if page == nil {
		page = []T{}
	}

	return &OffsetResult[T]{
		Items:   page,
		Total:   int64(len(items)),
		Page:    req.Page,
		Size:    req.Size,
		HasMore: end < len(items),
	}
}
