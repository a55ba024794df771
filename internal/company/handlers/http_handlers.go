package handlers

import (
	"net/http"

	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/gartstein/bizmetrics/internal/company/query"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CompanyHandler serves the companies API on a gateway mux, mapping requests
// to a CompanyController.
type CompanyHandler struct {
	service  CompanyController
	logger   *zap.Logger
	pageSize int
}

// NewCompanyHandler constructs a new CompanyHandler. pageSize is the page
// size of a view when the request does not name one.
func NewCompanyHandler(service CompanyController, logger *zap.Logger, pageSize int) *CompanyHandler {
	if pageSize < 1 {
		pageSize = query.DefaultPageSize
	}
	return &CompanyHandler{
		service:  service,
		logger:   logger.Named("http_handler"),
		pageSize: pageSize,
	}
}

type endpoint func(r *http.Request, params map[string]string, in runtime.Marshaler) (any, error)

// Register adds the company routes to mux.
func (h *CompanyHandler) Register(mux *runtime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		fn      endpoint
	}{
		{http.MethodGet, "/v1/companies", h.ListCompanies},
		{http.MethodPost, "/v1/companies", h.AddCompany},
		{http.MethodGet, "/v1/companies/{id}", h.GetCompany},
		{http.MethodGet, "/v1/dashboard/summary", h.Summary},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, h.serve(mux, rt.fn)); err != nil {
			return err
		}
	}
	return nil
}

func (h *CompanyHandler) serve(mux *runtime.ServeMux, fn endpoint) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		inbound, outbound := runtime.MarshalerForRequest(mux, r)

		resp, err := fn(r, params, inbound)
		if err != nil {
			runtime.HTTPError(r.Context(), mux, outbound, w, r, h.mapServiceError(err))
			return
		}

		buf, err := outbound.Marshal(resp)
		if err != nil {
			h.logger.Error("Failed to marshal response", zap.Error(err))
			runtime.HTTPError(r.Context(), mux, outbound, w, r, status.Error(codes.Internal, "failed to marshal response"))
			return
		}
		w.Header().Set("Content-Type", outbound.ContentType(resp))
		if _, err := w.Write(buf); err != nil {
			h.logger.Warn("Failed to write response", zap.Error(err))
		}
	}
}

// ListCompanies returns one page of the filtered and sorted companies view.
func (h *CompanyHandler) ListCompanies(r *http.Request, _ map[string]string, _ runtime.Marshaler) (any, error) {
	state, err := stateFromQuery(r.URL.Query(), h.pageSize)
	if err != nil {
		return nil, err
	}

	page, err := h.service.ListCompanies(r.Context(), state)
	if err != nil {
		return nil, err
	}
	return toListResponse(page, state), nil
}

// GetCompany fetches a Company by ID, returning an error if not found.
func (h *CompanyHandler) GetCompany(r *http.Request, params map[string]string, _ runtime.Marshaler) (any, error) {
	id, err := parseID(params["id"])
	if err != nil {
		return nil, err
	}
	return h.service.GetCompany(r.Context(), id)
}

// AddCompany decodes an Add Company form and stores the new record.
func (h *CompanyHandler) AddCompany(r *http.Request, _ map[string]string, in runtime.Marshaler) (any, error) {
	var form models.CompanyForm
	if err := in.NewDecoder(r.Body).Decode(&form); err != nil {
		return nil, status.Error(codes.InvalidArgument, "company data required")
	}

	created, err := h.service.AddCompany(r.Context(), &form)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Summary returns the dashboard metrics.
func (h *CompanyHandler) Summary(r *http.Request, _ map[string]string, _ runtime.Marshaler) (any, error) {
	return h.service.Summary(r.Context())
}

