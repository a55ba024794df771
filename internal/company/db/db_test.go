package db

import (
	"context"
	"testing"

	e "github.com/gartstein/bizmetrics/internal/company/errors"
	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SetupTestDB initializes an in-memory SQLite record store for testing.
func SetupTestDB(t *testing.T) *Repository {
	repo, err := NewRepository(&Config{})
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newCompany(name string) *models.Company {
	return &models.Company{
		Name:          name,
		Logo:          "🔴",
		CEO:           models.CEO{Name: "Nichol James", Avatar: "👨‍💼"},
		Revenue:       "€245M",
		Profit:        "€55M",
		EBITDA:        "€75M",
		GrossMargin:   28.5,
		KeyInsights:   []string{"Strong Growth", "Tech"},
		RevenueChange: models.Positive,
		ProfitChange:  models.Negative,
	}
}

// TestAddCompany tests that a stored record reads back unchanged.
func TestAddCompany(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	company := newCompany("Test Company")
	err := repo.AddCompany(ctx, company)
	require.NoError(t, err, "AddCompany should not return an error")
	assert.Equal(t, 1, company.ID, "first record gets id 1")

	retrieved, err := repo.GetCompany(ctx, company.ID)
	require.NoError(t, err, "GetCompany should retrieve the created company")
	assert.Equal(t, *company, *retrieved)
}

// TestAddCompanyAssignsNextID checks max+1 id assignment.
func TestAddCompanyAssignsNextID(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		require.NoError(t, repo.AddCompany(ctx, newCompany(name)))
	}

	company := newCompany("four")
	company.ID = 42
	require.NoError(t, repo.AddCompany(ctx, company))
	assert.Equal(t, 4, company.ID, "caller ids are ignored")
}

// TestAddCompanyAfterGap checks that ids follow the highest id, not the count.
func TestAddCompanyAfterGap(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.AddCompany(ctx, newCompany("one")))
	require.NoError(t, repo.Exec(ctx, "UPDATE companies SET id = 9 WHERE id = 1"))

	company := newCompany("next")
	require.NoError(t, repo.AddCompany(ctx, company))
	assert.Equal(t, 10, company.ID)
}

// TestListCompanies ensures records come back in insertion order.
func TestListCompanies(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	empty, err := repo.ListCompanies(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, name := range []string{"Zenith", "Acme", "Midway"} {
		require.NoError(t, repo.AddCompany(ctx, newCompany(name)))
	}

	list, err := repo.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Zenith", list[0].Name)
	assert.Equal(t, "Acme", list[1].Name)
	assert.Equal(t, "Midway", list[2].Name)
	assert.Equal(t, []string{"Strong Growth", "Tech"}, list[0].KeyInsights)
}

// TestGetCompanyNotFound verifies error handling when the company does not exist.
func TestGetCompanyNotFound(t *testing.T) {
	repo := SetupTestDB(t)

	_, err := repo.GetCompany(context.Background(), 99)
	assert.ErrorIs(t, err, e.ErrNotFound, "GetCompany should return ErrNotFound for non-existent company")
}

// TestEmptyInsightsRoundTrip checks that missing insights read back as an empty list.
func TestEmptyInsightsRoundTrip(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	company := newCompany("Bare")
	company.KeyInsights = nil
	require.NoError(t, repo.AddCompany(ctx, company))

	got, err := repo.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.KeyInsights)
	assert.Empty(t, got.KeyInsights)
}

// TestWithTransaction ensures a failed transaction leaves no record behind.
func TestWithTransaction(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	err := repo.WithTransaction(ctx, func(txRepo *Repository) error {
		if err := txRepo.AddCompany(ctx, newCompany("Transactional Company")); err != nil {
			return err
		}
		return e.ErrInvalidInput
	})
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	list, err := repo.ListCompanies(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "rolled back record should not exist")
}
