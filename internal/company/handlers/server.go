// Package handlers provides the gRPC and HTTP servers of the company
// service. The gRPC server carries health checking and reflection; the
// companies API is served as JSON on a grpc-gateway mux behind the
// logging and JWT middleware chain.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gartstein/bizmetrics/internal/company/auth"
	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/gartstein/bizmetrics/internal/company/query"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/justinas/alice"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/protobuf/encoding/protojson"
)

// CompanyController defines the business logic interface
// that the HTTP handlers will invoke.
type CompanyController interface {
	AddCompany(ctx context.Context, form *models.CompanyForm) (*models.Company, error)
	GetCompany(ctx context.Context, id int) (*models.Company, error)
	ListCompanies(ctx context.Context, state query.State) (query.Page, error)
	Summary(ctx context.Context) (*models.Summary, error)
}

// Server holds references to both a gRPC server and an HTTP server.
type Server struct {
	grpcServer   *grpc.Server
	health       *health.Server
	httpServer   *http.Server
	conn         *grpc.ClientConn
	logger       *zap.Logger
	grpcEndpoint string
	httpEndpoint string
	grpcTarget   string
}

// NewServer constructs a Server with separate endpoints for gRPC and HTTP.
func NewServer(
	grpcPort int,
	httpPort int,
	logger *zap.Logger,
	grpcOpts ...grpc.ServerOption,
) *Server {
	s := &Server{
		grpcServer: grpc.NewServer(grpcOpts...),
		health:     health.NewServer(),
		httpServer: &http.Server{
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger:       logger,
		grpcEndpoint: fmt.Sprintf(":%d", grpcPort),
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
		grpcTarget:   fmt.Sprintf("localhost:%d", grpcPort),
	}
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	reflection.Register(s.grpcServer)
	return s
}

// NewGatewayMux returns a gateway mux serving the company routes and a
// /healthz endpoint backed by healthClient.
func NewGatewayMux(h *CompanyHandler, healthClient healthpb.HealthClient) (*runtime.ServeMux, error) {
	mux := runtime.NewServeMux(
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
			MarshalOptions: protojson.MarshalOptions{
				EmitUnpopulated: true,
			},
			UnmarshalOptions: protojson.UnmarshalOptions{
				DiscardUnknown: true,
			},
		}),
		runtime.WithHealthzEndpoint(healthClient),
	)
	if err := h.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// RegisterHTTPGateway sets up the HTTP gateway with the specified dial
// options. The dial options are used for the health check connection to the
// gRPC server.
func (s *Server) RegisterHTTPGateway(ctx context.Context, h *CompanyHandler, dialOpts []grpc.DialOption, jwtSecret string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	conn, err := grpc.NewClient(s.grpcTarget, dialOpts...)
	if err != nil {
		return fmt.Errorf("failed to create health client: %w", err)
	}

	mux, err := NewGatewayMux(h, healthpb.NewHealthClient(conn))
	if err != nil {
		conn.Close()
		return err
	}

	httpLogger := s.logger.Named("http")
	chain := alice.New(
		LoggingMiddleware(httpLogger),
		RecoverMiddleware(httpLogger),
		auth.HTTPMiddleware(jwtSecret),
	)

	s.conn = conn
	s.httpServer.Handler = chain.Then(mux)
	s.httpServer.Addr = s.httpEndpoint
	return nil
}

// Start runs the gRPC and HTTP servers concurrently, returning on the first error.
func (s *Server) Start() error {
	var wg sync.WaitGroup
	wg.Add(2)
	errChan := make(chan error, 2)

	// Start gRPC Server
	go func() {
		defer wg.Done()
		s.logger.Info("Starting gRPC server", zap.String("endpoint", s.grpcEndpoint))
		lis, err := net.Listen("tcp", s.grpcEndpoint)
		if err != nil {
			errChan <- fmt.Errorf("gRPC listen error: %w", err)
			return
		}
		s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		if err := s.grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("gRPC serve error: %w", err)
		}
	}()

	// Start HTTP Server
	go func() {
		defer wg.Done()
		s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP serve error: %w", err)
		}
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop gracefully shuts down both gRPC and HTTP servers.
func (s *Server) Stop() {
	s.logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.health.Shutdown()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	s.grpcServer.GracefulStop()
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.logger.Warn("Health client close error", zap.Error(err))
		}
	}

	s.logger.Info("Servers stopped")
}
