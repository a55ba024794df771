// Package models defines the core domain models for the Company entity.
// It includes definitions for Company, CompanyForm, Summary and the Change enumeration.
package models

// Change represents the direction of a financial signal.
type Change string

const (
	// Positive marks a growing signal.
	Positive Change = "positive"
	Negative Change = "negative"
)

// Valid reports whether c is one of the known directions.
func (c Change) Valid() bool {
	return c == Positive || c == Negative
}

// CEO identifies the chief executive of a company.
type CEO struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Company defines the domain model for a company financial record.
type Company struct {
	// ID is assigned by the record store on insert and never changes.
	ID int `json:"id"`
	// Name is the company’s name.
	Name string `json:"name"`
	// Logo is a short decorative marker, usually an emoji.
	Logo string `json:"logo"`
	CEO  CEO    `json:"ceo"`
	// Revenue, Profit and EBITDA are currency strings such as "€245M".
	Revenue string `json:"revenue"`
	Profit  string `json:"profit"`
	EBITDA  string `json:"ebitda"`
	// GrossMargin is a percentage, conventionally between 0 and 100.
	GrossMargin float64 `json:"grossMargin"`
	// KeyInsights keeps display order.
	KeyInsights   []string `json:"keyInsights"`
	RevenueChange Change   `json:"revenueChange"`
	ProfitChange  Change   `json:"profitChange"`
}

// CompanyForm is the raw Add Company form as submitted by a client.
// All values are strings; the service validates and converts them.
type CompanyForm struct {
	Name          string `json:"name"`
	Logo          string `json:"logo"`
	CEOName       string `json:"ceoName"`
	CEOAvatar     string `json:"ceoAvatar"`
	Revenue       string `json:"revenue"`
	Profit        string `json:"profit"`
	EBITDA        string `json:"ebitda"`
	GrossMargin   string `json:"grossMargin"`
	KeyInsights   string `json:"keyInsights"`
	RevenueChange string `json:"revenueChange"`
	ProfitChange  string `json:"profitChange"`
}

// Summary holds the dashboard metric cards computed over all companies.
type Summary struct {
	Companies          int     `json:"companies"`
	TotalRevenue       string  `json:"totalRevenue"`
	TotalProfit        string  `json:"totalProfit"`
	TotalEBITDA        string  `json:"totalEbitda"`
	RevenueDisplay     string  `json:"revenueDisplay"`
	ProfitDisplay      string  `json:"profitDisplay"`
	AverageGrossMargin float64 `json:"averageGrossMargin"`
	// Positive and Negative count companies by the performance filter rules,
	// so a company can be neither but never both.
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	// Unparsed counts companies whose revenue, profit or EBITDA could not be read.
	Unparsed     int       `json:"unparsed"`
	TopByRevenue []Company `json:"topByRevenue"`
}
