// Package db is the record store: company records kept in an in-memory
// SQLite database through GORM. Nothing outlives the process.
package db

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/bizmetrics/internal/company/errors"
	"github.com/gartstein/bizmetrics/internal/company/models"
	dbmodels "github.com/gartstein/bizmetrics/internal/company/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDSN opens a private in-memory database.
const DefaultDSN = ":memory:"

type Repository struct {
	db *gorm.DB
}

type Config struct {
	DSN string
	// Debug logs every SQL statement.
	Debug bool
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = DefaultDSN
	}

	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&dbmodels.Company{}); err != nil {
		return nil, fmt.Errorf("failed to migrate record store: %w", err)
	}

	return &Repository{db: db}, nil
}

// AddCompany stores company with id = max(existing ids) + 1, or 1 when the
// store is empty, and writes the assigned id back into company. Any id set by
// the caller is ignored.
func (r *Repository) AddCompany(ctx context.Context, company *models.Company) error {
	return r.WithTransaction(ctx, func(tx *Repository) error {
		var maxID int
		err := tx.db.WithContext(ctx).Model(&dbmodels.Company{}).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error
		if err != nil {
			return fmt.Errorf("failed to read last id: %w", err)
		}

		row := dbmodels.FromDomain(company)
		row.ID = maxID + 1
		if err := tx.db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
		company.ID = row.ID
		return nil
	})
}

func (r *Repository) GetCompany(ctx context.Context, id int) (*models.Company, error) {
	var row dbmodels.Company
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	company := row.ToDomain()
	return &company, nil
}

// ListCompanies returns every record in insertion order.
func (r *Repository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var rows []dbmodels.Company
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	companies := make([]models.Company, len(rows))
	for i := range rows {
		companies[i] = rows[i].ToDomain()
	}
	return companies, nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
