// Package catalog holds the list arithmetic behind the book pages:
// fixed-size pagination for the all-books table and the growing
// "load more" window on the home page.
package catalog

// Default sizes used by the pages.
const (
	DefaultPageSize   = 5
	DefaultWindowSize = 8
)

// Page describes one page of a list of Total items.
type Page struct {
	Number     int // 1-based, clamped into [1, TotalPages]
	Size       int
	Total      int
	TotalPages int
	Start      int // inclusive index of the first item
	End        int // exclusive index after the last item
}

// Paginate computes page bounds for total items.
// A list with no items has a single empty page, so TotalPages is never zero
// and Number is always a valid page.
func Paginate(total, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	page = min(max(page, 1), totalPages)

	start := min((page-1)*size, total)
	end := min(start+size, total)

	return Page{
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Prev returns the previous page number, clamped to 1.
func (p Page) Prev() int { return max(p.Number-1, 1) }

// Next returns the next page number, clamped to TotalPages.
func (p Page) Next() int { return min(p.Number+1, p.TotalPages) }

// Numbers lists every page number for the page links.
func (p Page) Numbers() []int {
	nums := make([]int, p.TotalPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// Offset is the 1-based row number of the first item on the page.
func (p Page) Offset() int { return p.Start + 1 }

// Slice returns the items on page p.
func Slice[T any](items []T, p Page) []T {
	start := min(p.Start, len(items))
	end := min(p.End, len(items))
	return items[start:end]
}
