package query

import (
	"fmt"
	"slices"

	e "github.com/gartstein/bizmetrics/internal/company/errors"
	"github.com/gartstein/bizmetrics/internal/company/models"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction. The empty direction counts as Asc.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// ParseDirection validates a direction received from a client.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Asc, Desc:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown sort direction %q", e.ErrInvalidInput, s)
	}
}

type keyed struct {
	company models.Company
	value   Value
}

// Sort returns a new slice with records ordered by field. The sort is stable.
// Records whose value is undefined come last in both directions.
func Sort(records []models.Company, field Field, dir Direction) []models.Company {
	keys := make([]keyed, len(records))
	for i := range records {
		keys[i] = keyed{company: records[i], value: Extract(&records[i], field)}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case !a.value.Defined() && !b.value.Defined():
			return 0
		case !a.value.Defined():
			return 1
		case !b.value.Defined():
			return -1
		}
		c := Compare(a.value, b.value)
		if dir == Desc {
			return -c
		}
		return c
	})

	out := make([]models.Company, len(keys))
	for i, k := range keys {
		out[i] = k.company
	}
	return out
}
