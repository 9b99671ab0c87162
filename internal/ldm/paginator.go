package ldm

// DefaultPageSize applies when a non-positive page size is requested.
const DefaultPageSize = 5

// Page is the visible window over a collection.
type Page[T any] struct {
	Items      []T
	Offset     int
	PageSize   int
	PageNumber int
	PageCount  int
	Total      int
}

// HasPrevious reports whether a previous page exists.
func (p Page[T]) HasPrevious() bool {
	return p.Offset > 0
}

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool {
	return p.Offset+p.PageSize < p.Total
}

// PreviousOffset is the offset of the previous page, never negative.
func (p Page[T]) PreviousOffset() int {
	if p.Offset-p.PageSize < 0 {
		return 0
	}
	return p.Offset - p.PageSize
}

// NextOffset is the offset of the next page, or the current offset on the last page.
func (p Page[T]) NextOffset() int {
	if !p.HasNext() {
		return p.Offset
	}
	return p.Offset + p.PageSize
}

// First is the 1-based position of the first visible item, 0 when empty.
func (p Page[T]) First() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.Offset + 1
}

// Last is the 1-based position of the last visible item.
func (p Page[T]) Last() int {
	return p.Offset + len(p.Items)
}

// ClampOffset bounds offset to [0, start of the last page].
func ClampOffset(offset, length, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if offset < 0 || length <= 0 {
		return 0
	}
	// Snap to the last page start, not length-pageSize: 12 items at 5 per page end on [10, 12).
	last := (pageCount(length, pageSize) - 1) * pageSize
	if offset > last {
		return last
	}
	return offset
}

// Paginate computes the visible slice and page metadata. The offset is clamped first.
func Paginate[T any](items []T, offset, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	offset = ClampOffset(offset, total, pageSize)
	end := offset + pageSize
	if end > total {
		end = total
	}
	page := Page[T]{
		Items:     items[offset:end:end],
		Offset:    offset,
		PageSize:  pageSize,
		PageCount: pageCount(total, pageSize),
		Total:     total,
	}
	if total > 0 {
		page.PageNumber = offset/pageSize + 1
	}
	return page
}

func pageCount(length, pageSize int) int {
	return (length + pageSize - 1) / pageSize
}
