package controller

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	e "github.com/gartstein/bizmetrics/internal/company/errors"
	"github.com/gartstein/bizmetrics/internal/company/models"
)

// ParseForm validates an Add Company form and converts it into a record
// without id. Only presence is checked for the required fields: currency
// strings are stored as typed and read leniently by the query engine.
func ParseForm(form *models.CompanyForm) (*models.Company, error) {
	if form == nil {
		return nil, fmt.Errorf("%w: company data required", e.ErrInvalidInput)
	}

	required := []struct{ field, value string }{
		{"name", form.Name},
		{"ceoName", form.CEOName},
		{"revenue", form.Revenue},
		{"profit", form.Profit},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", e.ErrInvalidInput, strings.Join(missing, ", "))
	}

	margin, err := parseMargin(form.GrossMargin)
	if err != nil {
		return nil, err
	}
	revenueChange, err := parseChange("revenueChange", form.RevenueChange)
	if err != nil {
		return nil, err
	}
	profitChange, err := parseChange("profitChange", form.ProfitChange)
	if err != nil {
		return nil, err
	}

	return &models.Company{
		Name:          strings.TrimSpace(form.Name),
		Logo:          strings.TrimSpace(form.Logo),
		CEO:           models.CEO{Name: strings.TrimSpace(form.CEOName), Avatar: strings.TrimSpace(form.CEOAvatar)},
		Revenue:       strings.TrimSpace(form.Revenue),
		Profit:        strings.TrimSpace(form.Profit),
		EBITDA:        strings.TrimSpace(form.EBITDA),
		GrossMargin:   margin,
		KeyInsights:   SplitInsights(form.KeyInsights),
		RevenueChange: revenueChange,
		ProfitChange:  profitChange,
	}, nil
}

// SplitInsights splits a comma separated list, trimming entries and dropping
// empty ones.
func SplitInsights(s string) []string {
	insights := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			insights = append(insights, part)
		}
	}
	return insights
}

// parseMargin reads the gross margin percentage; blank means 0.
func parseMargin(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	m, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, fmt.Errorf("%w: grossMargin %q is not a number", e.ErrInvalidInput, s)
	}
	return m, nil
}

// parseChange reads a change direction; blank means positive.
func parseChange(field, s string) (models.Change, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Positive, nil
	}
	c := models.Change(strings.ToLower(s))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %s must be positive or negative, got %q", e.ErrInvalidInput, field, s)
	}
	return c, nil
}
