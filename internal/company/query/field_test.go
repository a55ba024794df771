package query

import (
	"math"
	"testing"

	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	c := models.Company{
		ID:            7,
		Name:          "Acme Corp",
		Logo:          "🔴",
		CEO:           models.CEO{Name: "Jane DOE", Avatar: "👩‍💼"},
		Revenue:       "€245M",
		Profit:        "€55.5M",
		EBITDA:        "€75M",
		GrossMargin:   28.5,
		RevenueChange: models.Positive,
		ProfitChange:  models.Negative,
	}

	tests := []struct {
		field   Field
		want    Value
		defined bool
	}{
		{field: FieldID, want: Number(7), defined: true},
		{field: FieldName, want: Text("acme corp"), defined: true},
		{field: FieldCEO, want: Text("jane doe"), defined: true},
		{field: FieldRevenue, want: Number(245), defined: true},
		{field: FieldProfit, want: Number(55.5), defined: true},
		{field: FieldEBITDA, want: Text("€75m"), defined: true},
		{field: FieldGrossMargin, want: Number(28.5), defined: true},
		{field: FieldRevenueChange, want: Text("positive"), defined: true},
		{field: FieldProfitChange, want: Text("negative"), defined: true},
		{field: Field("keyInsights"), defined: false},
		{field: Field("unknown"), defined: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			got := Extract(&c, tt.field)
			assert.Equal(t, tt.defined, got.Defined())
			if tt.defined {
				assert.Equal(t, 0, Compare(tt.want, got), "want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestExtract_UnreadableValuesAreUndefined(t *testing.T) {
	c := models.Company{Revenue: "€n/aM", Profit: "", GrossMargin: math.NaN()}

	assert.False(t, Extract(&c, FieldRevenue).Defined())
	assert.False(t, Extract(&c, FieldProfit).Defined())
	assert.False(t, Extract(&c, FieldGrossMargin).Defined())
}

func TestExtract_EBITDAIsRawText(t *testing.T) {
	small := models.Company{ID: 1, EBITDA: "€95M"}
	large := models.Company{ID: 2, EBITDA: "€120M"}

	got := Extract(&small, FieldEBITDA)
	assert.Equal(t, "€95m", got.String())
	_, isNumber := got.Float()
	assert.False(t, isNumber)

	sorted := Sort([]models.Company{small, large}, FieldEBITDA, Asc)
	assert.Equal(t, []int{2, 1}, []int{sorted[0].ID, sorted[1].ID}, "\"€120m\" precedes \"€95m\"")
}

func TestCompare(t *testing.T) {
	assert.Negative(t, Compare(Number(2), Number(10)))
	assert.Positive(t, Compare(Text("b"), Text("A")))
	assert.Zero(t, Compare(Text("Zenith"), Text("zenith")))
	assert.Negative(t, Compare(Number(1000), Text("a")))
}

func TestParseField(t *testing.T) {
	f, err := ParseField("grossMargin")
	require.NoError(t, err)
	assert.Equal(t, FieldGrossMargin, f)

	_, err = ParseField("keyInsights")
	assert.Error(t, err)
}
