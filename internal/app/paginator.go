package app

import (
	"fmt"

	"github.com/shiva/internal/domain"
)

// DefaultPageSize is the number of cards per page when none is configured.
const DefaultPageSize = 3

// Window returns the half-open slice bounds [start, end) of page over total items.
// Pages past the end yield an empty window at total.
func Window(page, size, total int) (start, end int) {
	if page < 1 {
		page = 1
	}
	start = (page - 1) * size
	if start > total {
		start = total
	}
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}

// LastPage is the highest page holding at least one item, and 1 for an empty list.
func LastPage(size, total int) int {
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Controls computes the pagination bar for page.
func Controls(page, size, total int) domain.PageControls {
	return domain.PageControls{
		PrevDisabled: page <= 1,
		NextDisabled: page*size >= total,
		Label:        fmt.Sprintf("Page %d", page),
	}
}
