package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "record notation", input: "€245M", want: "245", wantOK: true},
		{name: "fractional", input: "€68.9M", want: "68.9", wantOK: true},
		{name: "surrounding spaces", input: "  €12M ", want: "12", wantOK: true},
		{name: "no symbol", input: "100M", want: "100", wantOK: true},
		{name: "bare number", input: "7.5", want: "7.5", wantOK: true},
		{name: "negative", input: "€-3M", want: "-3", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "only markers", input: "€M", wantOK: false},
		{name: "not a number", input: "€n/aM", wantOK: false},
		{name: "thousands separator", input: "€1,200M", wantOK: false},
		{name: "other unit", input: "€5B", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "€245M", Format(decimal.NewFromInt(245)))
	assert.Equal(t, "€68.9M", Format(decimal.RequireFromString("68.9")))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "€2,341,000,000.00", Display(decimal.NewFromInt(2341)))
	assert.Equal(t, "€500,000.00", Display(decimal.RequireFromString("0.5")))
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "€", Symbol())
}
