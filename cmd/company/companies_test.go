package main

import (
	"bytes"
	"testing"

	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/gartstein/bizmetrics/internal/company/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewFlags_State(t *testing.T) {
	f := viewFlags{
		search:       "acme",
		revenueRange: "high",
		performance:  "negative",
		sort:         "revenue",
		direction:    "desc",
		page:         2,
	}
	state, err := f.state(10)
	require.NoError(t, err)
	assert.Equal(t, "acme", state.Search)
	assert.Equal(t, query.High, state.Filters.RevenueRange)
	assert.Equal(t, models.Negative, state.Filters.Performance)
	assert.Equal(t, query.FieldRevenue, state.SortField)
	assert.Equal(t, query.Desc, state.SortDirection)
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, 10, state.PageSize)

	f.sort = "color"
	_, err = f.state(10)
	assert.Error(t, err)
}

func TestRenderPage(t *testing.T) {
	records := make([]models.Company, 23)
	for i := range records {
		records[i] = models.Company{ID: i + 1, Name: "Co", Revenue: "€1M", GrossMargin: 12.5}
	}

	var buf bytes.Buffer
	require.NoError(t, renderPage(&buf, query.Paginate(records, 10, 3)))
	out := buf.String()
	assert.Contains(t, out, "Showing 21 to 23 of 23 results")
	assert.Contains(t, out, "Pages: 1 2 [3]")
	assert.Contains(t, out, "12.5%")
}

func TestRenderPage_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPage(&buf, query.Paginate(nil, 10, 1)))
	assert.Contains(t, buf.String(), "No companies match")
}

func TestRenderWindow(t *testing.T) {
	page := query.Paginate(make([]models.Company, 100), 10, 5)
	assert.Equal(t, "1 ... 4 [5] 6 ... 10", renderWindow(page.Window()))
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderSummary(&buf, &models.Summary{
		Companies:          2,
		TotalRevenue:       "€300M",
		RevenueDisplay:     "€300,000,000.00",
		AverageGrossMargin: 21.5,
		TopByRevenue:       []models.Company{{Name: "Zenith", Revenue: "€200M"}},
	}))
	out := buf.String()
	assert.Contains(t, out, "€300,000,000.00")
	assert.Contains(t, out, "21.50%")
	assert.Contains(t, out, "1.  Zenith")
}
