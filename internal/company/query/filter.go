package query

import (
	"fmt"
	"strings"

	e "github.com/gartstein/bizmetrics/internal/company/errors"
	"github.com/gartstein/bizmetrics/internal/company/models"
)

// Category names an independent filter dimension. Each category holds at
// most one selected bucket.
type Category string

const (
	CategoryRevenueRange Category = "revenueRange"
	CategoryProfitMargin Category = "profitMargin"
	CategoryPerformance  Category = "performance"
)

// Categories lists every filter category.
var Categories = []Category{CategoryRevenueRange, CategoryProfitMargin, CategoryPerformance}

// ParseCategory validates a category name received from a client.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	switch c {
	case CategoryRevenueRange, CategoryProfitMargin, CategoryPerformance:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown filter category %q", e.ErrInvalidInput, s)
	}
}

// Bucket is a range selection within the revenue or margin category.
type Bucket string

const (
	Low    Bucket = "low"
	Medium Bucket = "medium"
	High   Bucket = "high"
)

// Bucket boundaries. Revenue is in millions, margin in percent.
const (
	revenueMediumFrom = 50
	revenueHighFrom   = 200
	marginMediumFrom  = 10
	marginHighFrom    = 25
)

// Filters holds the selected bucket per category. An empty field means the
// category is inactive.
type Filters struct {
	RevenueRange Bucket        `json:"revenueRange,omitempty"`
	ProfitMargin Bucket        `json:"profitMargin,omitempty"`
	Performance  models.Change `json:"performance,omitempty"`
}

// Set selects value in category, replacing any previous selection there.
// An empty value clears the category.
func (f *Filters) Set(category Category, value string) error {
	switch category {
	case CategoryRevenueRange, CategoryProfitMargin:
		b := Bucket(value)
		if b != "" && b != Low && b != Medium && b != High {
			return fmt.Errorf("%w: unknown %s bucket %q", e.ErrInvalidInput, category, value)
		}
		if category == CategoryRevenueRange {
			f.RevenueRange = b
		} else {
			f.ProfitMargin = b
		}
	case CategoryPerformance:
		c := models.Change(value)
		if c != "" && !c.Valid() {
			return fmt.Errorf("%w: unknown performance %q", e.ErrInvalidInput, value)
		}
		f.Performance = c
	default:
		return fmt.Errorf("%w: unknown filter category %q", e.ErrInvalidInput, category)
	}
	return nil
}

// Predicate decides whether a record belongs to the view.
type Predicate func(c *models.Company) bool

// Predicates returns one predicate per active category.
func (f Filters) Predicates() []Predicate {
	var preds []Predicate
	if f.RevenueRange != "" {
		preds = append(preds, InRevenueRange(f.RevenueRange))
	}
	if f.ProfitMargin != "" {
		preds = append(preds, InMarginRange(f.ProfitMargin))
	}
	switch f.Performance {
	case models.Positive:
		preds = append(preds, IsPositive)
	case models.Negative:
		preds = append(preds, IsNegative)
	}
	return preds
}

// Matching matches records whose name or CEO name contains text,
// ignoring case. Empty text matches everything.
func Matching(text string) Predicate {
	needle := strings.ToLower(text)
	return func(c *models.Company) bool {
		return strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.CEO.Name), needle)
	}
}

// InRevenueRange matches records whose revenue falls in b.
// Unreadable revenue never matches.
func InRevenueRange(b Bucket) Predicate {
	return func(c *models.Company) bool {
		v, ok := Extract(c, FieldRevenue).Float()
		return ok && bucketOf(v, revenueMediumFrom, revenueHighFrom) == b
	}
}

// InMarginRange matches records whose gross margin falls in b.
func InMarginRange(b Bucket) Predicate {
	return func(c *models.Company) bool {
		v, ok := Extract(c, FieldGrossMargin).Float()
		return ok && bucketOf(v, marginMediumFrom, marginHighFrom) == b
	}
}

// IsPositive requires both revenue and profit to be growing.
func IsPositive(c *models.Company) bool {
	return c.RevenueChange == models.Positive && c.ProfitChange == models.Positive
}

// IsNegative requires only one of revenue or profit to be shrinking, so it is
// not the complement of IsPositive.
func IsNegative(c *models.Company) bool {
	return c.RevenueChange == models.Negative || c.ProfitChange == models.Negative
}

func bucketOf(v, mediumFrom, highFrom float64) Bucket {
	switch {
	case v < mediumFrom:
		return Low
	case v < highFrom:
		return Medium
	default:
		return High
	}
}

// Filter returns the records matching search and every active filter, in
// input order.
func Filter(records []models.Company, search string, filters Filters) []models.Company {
	preds := append([]Predicate{Matching(search)}, filters.Predicates()...)
	out := make([]models.Company, 0, len(records))
	for i := range records {
		if matchesAll(&records[i], preds) {
			out = append(out, records[i])
		}
	}
	return out
}

func matchesAll(c *models.Company, preds []Predicate) bool {
	for _, p := range preds {
		if !p(c) {
			return false
		}
	}
	return true
}
