package query

import (
	"cmp"
	"fmt"
	"math"
	"strings"

	e "github.com/gartstein/bizmetrics/internal/company/errors"
	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/gartstein/bizmetrics/internal/company/money"
)

// Field names a sortable attribute of a company record.
type Field string

const (
	FieldID            Field = "id"
	FieldName          Field = "name"
	FieldLogo          Field = "logo"
	FieldCEO           Field = "ceo"
	FieldRevenue       Field = "revenue"
	FieldProfit        Field = "profit"
	FieldEBITDA        Field = "ebitda"
	FieldGrossMargin   Field = "grossMargin"
	FieldRevenueChange Field = "revenueChange"
	FieldProfitChange  Field = "profitChange"
)

type kind uint8

const (
	undefined kind = iota
	number
	text
)

// Value is the comparable form of a record attribute. The zero Value is
// undefined.
type Value struct {
	kind kind
	num  float64
	str  string
}

// Number returns a numeric Value. NaN is undefined.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: number, num: f}
}

// Text returns a string Value, lower-cased for case-insensitive ordering.
func Text(s string) Value {
	return Value{kind: text, str: strings.ToLower(s)}
}

// Defined reports whether the value can take part in comparisons.
func (v Value) Defined() bool {
	return v.kind != undefined
}

// Float returns the numeric content of v.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == number
}

func (v Value) String() string {
	switch v.kind {
	case number:
		return fmt.Sprintf("%g", v.num)
	case text:
		return v.str
	default:
		return "undefined"
	}
}

// Compare orders two defined values. Numbers order before strings.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	if a.kind == number {
		return cmp.Compare(a.num, b.num)
	}
	return strings.Compare(a.str, b.str)
}

// Extractor reads one field of a record.
type Extractor func(c *models.Company) Value

func textOf(get func(c *models.Company) string) Extractor {
	return func(c *models.Company) Value { return Text(get(c)) }
}

func currencyOf(get func(c *models.Company) string) Extractor {
	return func(c *models.Company) Value {
		d, ok := money.Parse(get(c))
		if !ok {
			return Value{}
		}
		return Number(d.InexactFloat64())
	}
}

var extractors = map[Field]Extractor{
	FieldID:            func(c *models.Company) Value { return Number(float64(c.ID)) },
	FieldName:          textOf(func(c *models.Company) string { return c.Name }),
	FieldLogo:          textOf(func(c *models.Company) string { return c.Logo }),
	FieldCEO:           textOf(func(c *models.Company) string { return c.CEO.Name }),
	FieldRevenue:       currencyOf(func(c *models.Company) string { return c.Revenue }),
	FieldProfit:        currencyOf(func(c *models.Company) string { return c.Profit }),
	FieldEBITDA:        textOf(func(c *models.Company) string { return c.EBITDA }),
	FieldGrossMargin:   func(c *models.Company) Value { return Number(c.GrossMargin) },
	FieldRevenueChange: textOf(func(c *models.Company) string { return string(c.RevenueChange) }),
	FieldProfitChange:  textOf(func(c *models.Company) string { return string(c.ProfitChange) }),
}

// Extract returns the comparable value of field for c. Unknown fields and
// values that cannot be read (a malformed currency string, a NaN margin)
// are undefined.
func Extract(c *models.Company, field Field) Value {
	get, ok := extractors[field]
	if !ok {
		return Value{}
	}
	return get(c)
}

// ParseField validates a field name received from a client.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if _, ok := extractors[f]; !ok {
		return "", fmt.Errorf("%w: unknown sort field %q", e.ErrInvalidInput, s)
	}
	return f, nil
}
