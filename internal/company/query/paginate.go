package query

import "github.com/gartstein/bizmetrics/internal/company/models"

// DefaultPageSize is the number of rows per page when none is requested.
const DefaultPageSize = 10

// Page is one slice of an ordered view plus the metadata needed to render
// pagination controls.
type Page struct {
	Items    []models.Company `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	// TotalPages is at least 1, even for an empty view.
	TotalPages int `json:"totalPages"`
	// StartIndex and EndIndex bound Items within the view; EndIndex is
	// exclusive.
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// PageLink is one entry of a navigable page list: either a page number or a
// collapsed gap.
type PageLink struct {
	Number   int  `json:"number,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Paginate cuts records into pages of pageSize and returns the requested
// page. Out of range page numbers are clamped.
func Paginate(records []models.Company, pageSize, page int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	totalPages := max(1, (total+pageSize-1)/pageSize)
	page = min(max(page, 1), totalPages)

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	items := make([]models.Company, end-start)
	copy(items, records[start:end])

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		StartIndex: start,
		EndIndex:   end,
	}
}

// HasPrevious reports whether a page precedes p.
func (p Page) HasPrevious() bool { return p.Page > 1 }

// HasNext reports whether a page follows p.
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// Window lists the page controls to display: the first and last pages, the
// current page and its direct neighbours. Pages two steps away from the
// current one collapse into an ellipsis; the rest are omitted.
func (p Page) Window() []PageLink {
	var links []PageLink
	for n := 1; n <= p.TotalPages; n++ {
		switch {
		case n == 1 || n == p.TotalPages || (n >= p.Page-1 && n <= p.Page+1):
			links = append(links, PageLink{Number: n, Current: n == p.Page})
		case n == p.Page-2 || n == p.Page+2:
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	return links
}
