package db

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/gartstein/bizmetrics/internal/company/models"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type fixture struct {
	Name string `yaml:"name"`
	Logo string `yaml:"logo"`
	CEO  struct {
		Name   string `yaml:"name"`
		Avatar string `yaml:"avatar"`
	} `yaml:"ceo"`
	Revenue       string   `yaml:"revenue"`
	Profit        string   `yaml:"profit"`
	EBITDA        string   `yaml:"ebitda"`
	GrossMargin   float64  `yaml:"gross_margin"`
	KeyInsights   []string `yaml:"key_insights"`
	RevenueChange string   `yaml:"revenue_change"`
	ProfitChange  string   `yaml:"profit_change"`
}

// LoadFixtures returns the seed companies. An empty path selects the
// built-in set.
func LoadFixtures(path string) ([]models.Company, error) {
	data := defaultFixtures
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixtures: %w", err)
		}
	}
	return DecodeFixtures(data)
}

// DecodeFixtures parses a YAML list of companies.
func DecodeFixtures(data []byte) ([]models.Company, error) {
	var fixtures []fixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	companies := make([]models.Company, 0, len(fixtures))
	for i, f := range fixtures {
		rc, pc := models.Change(f.RevenueChange), models.Change(f.ProfitChange)
		if f.Name == "" || !rc.Valid() || !pc.Valid() {
			return nil, fmt.Errorf("invalid fixture #%d %q", i+1, f.Name)
		}
		insights := f.KeyInsights
		if insights == nil {
			insights = []string{}
		}
		companies = append(companies, models.Company{
			Name:          f.Name,
			Logo:          f.Logo,
			CEO:           models.CEO{Name: f.CEO.Name, Avatar: f.CEO.Avatar},
			Revenue:       f.Revenue,
			Profit:        f.Profit,
			EBITDA:        f.EBITDA,
			GrossMargin:   f.GrossMargin,
			KeyInsights:   insights,
			RevenueChange: rc,
			ProfitChange:  pc,
		})
	}
	return companies, nil
}

// Seed adds companies in order, each receiving the next id.
func (r *Repository) Seed(ctx context.Context, companies []models.Company) error {
	for i := range companies {
		if err := r.AddCompany(ctx, &companies[i]); err != nil {
			return fmt.Errorf("failed to seed %q: %w", companies[i].Name, err)
		}
	}
	return nil
}
