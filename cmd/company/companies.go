package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gartstein/bizmetrics/internal/company/config"
	"github.com/gartstein/bizmetrics/internal/company/controller"
	"github.com/gartstein/bizmetrics/internal/company/events"
	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/gartstein/bizmetrics/internal/company/query"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type viewFlags struct {
	search       string
	revenueRange string
	profitMargin string
	performance  string
	sort         string
	direction    string
	page         int
	pageSize     int
}

func (f viewFlags) state(defaultPageSize int) (query.State, error) {
	state := query.NewState()
	state.PageSize = defaultPageSize
	if f.pageSize > 0 {
		state.PageSize = f.pageSize
	}
	state.SetPage(f.page)
	state.SetSearch(f.search)

	filters := map[query.Category]string{
		query.CategoryRevenueRange: f.revenueRange,
		query.CategoryProfitMargin: f.profitMargin,
		query.CategoryPerformance:  f.performance,
	}
	for c, v := range filters {
		if err := state.SetFilter(c, v); err != nil {
			return query.State{}, err
		}
	}

	field, err := query.ParseField(f.sort)
	if err != nil {
		return query.State{}, err
	}
	dir, err := query.ParseDirection(f.direction)
	if err != nil {
		return query.State{}, err
	}
	state.SortField, state.SortDirection = field, dir
	return state, nil
}

func companiesCmd(configPath *string) *cobra.Command {
	var f viewFlags

	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Print a page of the companies view over the fixture set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			state, err := f.state(cfg.PageSize)
			if err != nil {
				return err
			}

			svc, closeStore, err := localService(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			page, err := svc.ListCompanies(cmd.Context(), state)
			if err != nil {
				return err
			}
			return renderPage(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Case-insensitive match on company or CEO name")
	cmd.Flags().StringVar(&f.revenueRange, "revenue-range", "", "Revenue bucket: low, medium, high")
	cmd.Flags().StringVar(&f.profitMargin, "profit-margin", "", "Gross margin bucket: low, medium, high")
	cmd.Flags().StringVar(&f.performance, "performance", "", "Performance: positive, negative")
	cmd.Flags().StringVar(&f.sort, "sort", string(query.FieldName), "Sort field")
	cmd.Flags().StringVar(&f.direction, "direction", string(query.Asc), "Sort direction: asc, desc")
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "Page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Rows per page (default from config)")
	return cmd
}

func summaryCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard metrics over the fixture set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			svc, closeStore, err := localService(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			sum, err := svc.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return renderSummary(cmd.OutOrStdout(), sum)
		},
	}
}

// localService builds a service over a seeded in-memory store without
// publishing events.
func localService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*controller.CompanyService, func(), error) {
	local := *cfg
	local.SeedFixtures = true
	repo, err := openStore(ctx, &local, logger)
	if err != nil {
		return nil, nil, err
	}
	svc := controller.NewCompanyService(repo, events.NopProducer{Logger: logger}, logger)
	return svc, func() { repo.Close() }, nil
}

func renderPage(w io.Writer, page query.Page) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMPANY\tCEO\tREVENUE\tPROFIT\tEBITDA\tMARGIN\tREVENUE Δ\tPROFIT Δ")
	for _, c := range page.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.CEO.Name, c.Revenue, c.Profit, c.EBITDA,
			strconv.FormatFloat(c.GrossMargin, 'f', -1, 64)+"%",
			c.RevenueChange, c.ProfitChange)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if page.Total == 0 {
		_, err := fmt.Fprintln(w, "\nNo companies match the current search and filters.")
		return err
	}
	_, err := fmt.Fprintf(w, "\nShowing %d to %d of %d results\nPages: %s\n",
		page.StartIndex+1, page.EndIndex, page.Total, renderWindow(page.Window()))
	return err
}

func renderWindow(links []query.PageLink) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		switch {
		case l.Ellipsis:
			parts = append(parts, "...")
		case l.Current:
			parts = append(parts, "["+strconv.Itoa(l.Number)+"]")
		default:
			parts = append(parts, strconv.Itoa(l.Number))
		}
	}
	return strings.Join(parts, " ")
}

func renderSummary(w io.Writer, s *models.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Companies\t%d\n", s.Companies)
	fmt.Fprintf(tw, "Total revenue\t%s\t%s\n", s.TotalRevenue, s.RevenueDisplay)
	fmt.Fprintf(tw, "Total profit\t%s\t%s\n", s.TotalProfit, s.ProfitDisplay)
	fmt.Fprintf(tw, "Total EBITDA\t%s\n", s.TotalEBITDA)
	fmt.Fprintf(tw, "Average gross margin\t%s%%\n", strconv.FormatFloat(s.AverageGrossMargin, 'f', 2, 64))
	fmt.Fprintf(tw, "Positive performers\t%d\n", s.Positive)
	fmt.Fprintf(tw, "Negative performers\t%d\n", s.Negative)
	if s.Unparsed > 0 {
		fmt.Fprintf(tw, "Unreadable amounts\t%d\n", s.Unparsed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.TopByRevenue) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nTop companies by revenue")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, c := range s.TopByRevenue {
		fmt.Fprintf(tw, "%d.\t%s\t%s\n", i+1, c.Name, c.Revenue)
	}
	return tw.Flush()
}
