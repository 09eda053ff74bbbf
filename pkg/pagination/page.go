package pagination

import (
	"strconv"
	"strings"
)

// Page describes one slice of a numbered listing.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
}

// Offset is the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ResolvePage turns a raw page parameter into a valid page. Anything that is
// not an integer falls back to the first page; integers outside the range
// (including zero and negatives) land on the last page. An empty listing
// still has one page.
func ResolvePage(raw string, size int, total int64) Page {
	if size <= 0 {
		size = 1
	}
	totalPages := 1
	if total > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	number := 1
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		number = n
		if number < 1 || number > totalPages {
			number = totalPages
		}
	}

	return Page{
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
