package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	e "github.com/gartstein/bizmetrics/internal/company/errors"
	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/gartstein/bizmetrics/internal/company/query"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MaxPageSize bounds the pageSize query parameter.
const MaxPageSize = 100

// ListResponse is the companies view returned by GET /v1/companies.
type ListResponse struct {
	Companies  []models.Company `json:"companies"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	StartIndex int              `json:"startIndex"`
	EndIndex   int              `json:"endIndex"`
	Window     []query.PageLink `json:"window"`
	State      query.State      `json:"state"`
}

// stateFromQuery builds the view state from URL query parameters. The
// toggle parameter is applied last, on top of sort and direction.
func stateFromQuery(values url.Values, defaultPageSize int) (query.State, error) {
	state := query.NewState()
	if defaultPageSize > 0 {
		state.PageSize = defaultPageSize
	}

	state.SetSearch(strings.TrimSpace(values.Get("search")))

	for _, c := range query.Categories {
		if v := strings.TrimSpace(values.Get(string(c))); v != "" {
			if err := state.SetFilter(c, v); err != nil {
				return query.State{}, err
			}
		}
	}

	if v := values.Get("sort"); v != "" {
		f, err := query.ParseField(v)
		if err != nil {
			return query.State{}, err
		}
		state.SortField = f
	}
	if v := values.Get("direction"); v != "" {
		d, err := query.ParseDirection(v)
		if err != nil {
			return query.State{}, err
		}
		state.SortDirection = d
	}
	if v := values.Get("toggle"); v != "" {
		f, err := query.ParseField(v)
		if err != nil {
			return query.State{}, err
		}
		state.ToggleSort(f)
	}

	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return query.State{}, fmt.Errorf("%w: page must be a number", e.ErrInvalidInput)
		}
		state.SetPage(page)
	}
	if v := values.Get("pageSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > MaxPageSize {
			return query.State{}, fmt.Errorf("%w: pageSize must be between 1 and %d", e.ErrInvalidInput, MaxPageSize)
		}
		state.PageSize = size
	}

	return state, nil
}

func toListResponse(page query.Page, state query.State) *ListResponse {
	state.Page = page.Page
	return &ListResponse{
		Companies:  page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		StartIndex: page.StartIndex,
		EndIndex:   page.EndIndex,
		Window:     page.Window(),
		State:      state,
	}
}

// parseID reads a positive company id from a path parameter.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, status.Error(codes.InvalidArgument, "invalid company ID")
	}
	return id, nil
}

// mapServiceError maps domain or repository errors to appropriate gRPC status codes.
func (h *CompanyHandler) mapServiceError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, e.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, e.ErrNoStore):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		return status.Error(codes.Internal, "internal server error")
	}
}
