// Package summary computes the dashboard metric cards from the company
// records: totals, average margin, performance counts and top performers.
package summary

import (
	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/gartstein/bizmetrics/internal/company/money"
	"github.com/gartstein/bizmetrics/internal/company/query"
	"github.com/shopspring/decimal"
)

// DefaultTop is the number of companies listed in TopByRevenue.
const DefaultTop = 5

// Compute aggregates records. Amounts that cannot be parsed are left out of
// the totals and counted in Unparsed.
func Compute(records []models.Company, top int) models.Summary {
	var (
		revenue, profit, ebitda decimal.Decimal
		marginSum               decimal.Decimal
		marginCount             int64
		s                       = models.Summary{Companies: len(records)}
	)

	for i := range records {
		c := &records[i]

		r, okR := money.Parse(c.Revenue)
		p, okP := money.Parse(c.Profit)
		// EBITDA is optional on the form, so an empty value is not an error.
		b, okB := money.Parse(c.EBITDA)
		okB = okB || c.EBITDA == ""

		revenue = revenue.Add(r)
		profit = profit.Add(p)
		ebitda = ebitda.Add(b)
		if !okR || !okP || !okB {
			s.Unparsed++
		}

		if m, ok := query.Extract(c, query.FieldGrossMargin).Float(); ok {
			marginSum = marginSum.Add(decimal.NewFromFloat(m))
			marginCount++
		}

		switch {
		case query.IsPositive(c):
			s.Positive++
		case query.IsNegative(c):
			s.Negative++
		}
	}

	s.TotalRevenue = money.Format(revenue)
	s.TotalProfit = money.Format(profit)
	s.TotalEBITDA = money.Format(ebitda)
	s.RevenueDisplay = money.Display(revenue)
	s.ProfitDisplay = money.Display(profit)
	if marginCount > 0 {
		s.AverageGrossMargin = marginSum.Div(decimal.NewFromInt(marginCount)).Round(2).InexactFloat64()
	}

	if top <= 0 {
		top = DefaultTop
	}
	ranked := query.Sort(records, query.FieldRevenue, query.Desc)
	s.TopByRevenue = ranked[:min(top, len(ranked))]

	return s
}
