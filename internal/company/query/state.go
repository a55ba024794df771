package query

import "github.com/gartstein/bizmetrics/internal/company/models"

// State is the mutable combination of inputs driving a companies view.
// The zero State is usable: it sorts by name ascending and shows the first
// page of DefaultPageSize rows.
type State struct {
	Search        string    `json:"search"`
	Filters       Filters   `json:"filters"`
	SortField     Field     `json:"sortField"`
	SortDirection Direction `json:"sortDirection"`
	Page          int       `json:"page"`
	PageSize      int       `json:"pageSize"`
}

// NewState returns the state of a fresh view session.
func NewState() State {
	return State{
		SortField:     FieldName,
		SortDirection: Asc,
		Page:          1,
		PageSize:      DefaultPageSize,
	}
}

// SetSearch replaces the search text. The current page is kept and clamped
// on the next Apply.
func (s *State) SetSearch(text string) {
	s.Search = text
}

// SetFilter selects bucket in category; an empty bucket clears the category.
func (s *State) SetFilter(category Category, bucket string) error {
	return s.Filters.Set(category, bucket)
}

// ClearFilters removes every category filter.
func (s *State) ClearFilters() {
	s.Filters = Filters{}
}

// ToggleSort flips the direction when field is already the sort field,
// otherwise sorts by field ascending.
func (s *State) ToggleSort(field Field) {
	if s.field() == field {
		s.SortDirection = s.SortDirection.Flip()
		return
	}
	s.SortField = field
	s.SortDirection = Asc
}

// SetPage selects page; Apply clamps it into range.
func (s *State) SetPage(page int) {
	s.Page = page
}

func (s State) field() Field {
	if s.SortField == "" {
		return FieldName
	}
	return s.SortField
}

// Apply runs the full pipeline over records: filter, then sort, then
// paginate.
func (s State) Apply(records []models.Company) Page {
	filtered := Filter(records, s.Search, s.Filters)
	sorted := Sort(filtered, s.field(), s.SortDirection)
	return Paginate(sorted, s.PageSize, s.Page)
}
