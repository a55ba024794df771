// Package models contains the storage models of the record store,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"github.com/gartstein/bizmetrics/internal/company/models"
)

// Company is the row stored for a company record. The ID is assigned by the
// repository, never by the database, so that ids follow max+1.
type Company struct {
	ID            int      `gorm:"primaryKey;autoIncrement:false"`
	Name          string   `gorm:"not null"`
	Logo          string   `gorm:"size:32"`
	CEOName       string   `gorm:"column:ceo_name"`
	CEOAvatar     string   `gorm:"column:ceo_avatar;size:32"`
	Revenue       string   `gorm:"size:64"`
	Profit        string   `gorm:"size:64"`
	EBITDA        string   `gorm:"column:ebitda;size:64"`
	GrossMargin   float64  `gorm:"column:gross_margin"`
	KeyInsights   []string `gorm:"column:key_insights;serializer:json"`
	RevenueChange string   `gorm:"column:revenue_change;size:8"`
	ProfitChange  string   `gorm:"column:profit_change;size:8"`
	CreatedAt     time.Time
}

// FromDomain builds a row from a domain record.
func FromDomain(c *models.Company) Company {
	return Company{
		ID:            c.ID,
		Name:          c.Name,
		Logo:          c.Logo,
		CEOName:       c.CEO.Name,
		CEOAvatar:     c.CEO.Avatar,
		Revenue:       c.Revenue,
		Profit:        c.Profit,
		EBITDA:        c.EBITDA,
		GrossMargin:   c.GrossMargin,
		KeyInsights:   c.KeyInsights,
		RevenueChange: string(c.RevenueChange),
		ProfitChange:  string(c.ProfitChange),
	}
}

// ToDomain converts the row back into a domain record.
func (c *Company) ToDomain() models.Company {
	insights := c.KeyInsights
	if insights == nil {
		insights = []string{}
	}
	return models.Company{
		ID:            c.ID,
		Name:          c.Name,
		Logo:          c.Logo,
		CEO:           models.CEO{Name: c.CEOName, Avatar: c.CEOAvatar},
		Revenue:       c.Revenue,
		Profit:        c.Profit,
		EBITDA:        c.EBITDA,
		GrossMargin:   c.GrossMargin,
		KeyInsights:   insights,
		RevenueChange: models.Change(c.RevenueChange),
		ProfitChange:  models.Change(c.ProfitChange),
	}
}
