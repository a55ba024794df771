// Package controller implements the core business logic (service layer)
// for company records, orchestrating the record store, the query engine
// and event production.
package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/bizmetrics/internal/company/errors"
	"github.com/gartstein/bizmetrics/internal/company/events"
	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/gartstein/bizmetrics/internal/company/query"
	"github.com/gartstein/bizmetrics/internal/company/summary"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(eventType events.EventType, company *models.Company)
}

// Repository defines the record store interface.
type Repository interface {
	AddCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id int) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
}

// CompanyService provides the companies view, the dashboard summary and the
// Add Company operation over an explicitly injected record store.
type CompanyService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

// NewCompanyService constructs a CompanyService with a repository,
// an event producer, and a logger. A nil producer discards events.
func NewCompanyService(repo Repository, producer EventProducer, logger *zap.Logger) *CompanyService {
	if producer == nil {
		producer = events.NopProducer{Logger: logger}
	}
	return &CompanyService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("company_service"),
	}
}

func (s *CompanyService) store() (Repository, error) {
	if s == nil || s.repo == nil {
		return nil, e.ErrNoStore
	}
	return s.repo, nil
}

// AddCompany validates the form, stores the new record with the next id and
// publishes a company_added event.
func (s *CompanyService) AddCompany(ctx context.Context, form *models.CompanyForm) (*models.Company, error) {
	repo, err := s.store()
	if err != nil {
		return nil, err
	}

	company, err := ParseForm(form)
	if err != nil {
		return nil, err
	}

	if err := repo.AddCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to add company: %w", err)
	}
	s.logger.Info("Company added",
		zap.Int("company_id", company.ID),
		zap.String("name", company.Name),
	)

	published := *company
	s.producer.Produce(events.CompanyAdded, &published)
	return company, nil
}

// GetCompany retrieves a company by id for the detail view.
func (s *CompanyService) GetCompany(ctx context.Context, id int) (*models.Company, error) {
	repo, err := s.store()
	if err != nil {
		return nil, err
	}
	if id < 1 {
		return nil, fmt.Errorf("%w: invalid company ID", e.ErrInvalidInput)
	}

	company, err := repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListCompanies recomputes the companies view for state over the current
// records.
func (s *CompanyService) ListCompanies(ctx context.Context, state query.State) (query.Page, error) {
	repo, err := s.store()
	if err != nil {
		return query.Page{}, err
	}

	records, err := repo.ListCompanies(ctx)
	if err != nil {
		return query.Page{}, fmt.Errorf("failed to list companies: %w", err)
	}

	page := state.Apply(records)
	s.logger.Debug("Companies view computed",
		zap.String("search", state.Search),
		zap.String("sort_field", string(state.SortField)),
		zap.String("sort_direction", string(state.SortDirection)),
		zap.Int("matched", page.Total),
		zap.Int("page", page.Page),
	)
	return page, nil
}

// Summary computes the dashboard metrics over all records.
func (s *CompanyService) Summary(ctx context.Context) (*models.Summary, error) {
	repo, err := s.store()
	if err != nil {
		return nil, err
	}

	records, err := repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	sum := summary.Compute(records, summary.DefaultTop)
	if sum.Unparsed > 0 {
		s.logger.Warn("Some amounts could not be parsed", zap.Int("companies", sum.Unparsed))
	}
	return &sum, nil
}
