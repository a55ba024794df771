package query

import (
	"fmt"

	"github.com/gartstein/bizmetrics/internal/company/models"
)

func newCompany(id int, name, ceo, revenue string, margin float64, rc, pc models.Change) models.Company {
	return models.Company{
		ID:            id,
		Name:          name,
		CEO:           models.CEO{Name: ceo},
		Revenue:       revenue,
		Profit:        "€10M",
		EBITDA:        "€5M",
		GrossMargin:   margin,
		RevenueChange: rc,
		ProfitChange:  pc,
	}
}

// sampleCompanies mirrors the seeded dashboard data closely enough to cover
// every bucket of every filter category.
func sampleCompanies() []models.Company {
	return []models.Company{
		newCompany(1, "Global Tech Solutions", "Nichol James", "€245M", 28.5, models.Positive, models.Positive),
		newCompany(2, "Tech Innovation Corp", "Alex Morgan", "€342M", 22.3, models.Positive, models.Positive),
		newCompany(3, "NexGen Innovations", "Jordan Lee", "€224M", 18.5, models.Negative, models.Positive),
		newCompany(4, "Synergy Solutions", "Martin Luther", "€85M", 13.6, models.Positive, models.Negative),
		newCompany(5, "Vertex Global Services", "Jatin Mehta", "€120M", 5.4, models.Negative, models.Positive),
		newCompany(6, "Nordic Systems AB", "Jay Dublin", "€310M", 0.6, models.Negative, models.Negative),
		newCompany(7, "Quantum Computing Inc", "Jay Dublin", "€20M", 30.1, models.Positive, models.Positive),
	}
}

func names(records []models.Company) []string {
	out := make([]string, len(records))
	for i, c := range records {
		out[i] = c.Name
	}
	return out
}

func ids(records []models.Company) []int {
	out := make([]int, len(records))
	for i, c := range records {
		out[i] = c.ID
	}
	return out
}

func numbered(n int) []models.Company {
	out := make([]models.Company, n)
	for i := range out {
		out[i] = newCompany(i+1, fmt.Sprintf("Company %02d", i+1), "CEO", "€10M", 10, models.Positive, models.Positive)
	}
	return out
}
