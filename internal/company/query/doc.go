// Package query is the companies table engine. It turns the list of company
// records held by the store and the mutable view state (search text, active
// filters, sort field and direction, current page) into an ordered, paginated
// view. Every function is pure: inputs are never mutated and every call
// recomputes the full filter, sort and paginate pipeline.
package query
