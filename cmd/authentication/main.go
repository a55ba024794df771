// This is a **mock authentication service**, designed to provide JWT tokens
// for the company service, authenticating the configured demo accounts.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gartstein/bizmetrics/internal/company/auth"
	"github.com/gartstein/bizmetrics/internal/company/config"
	"go.uber.org/zap"
)

// TokenRequest is the credential payload of POST /token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents the response structure
type TokenResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type tokenService struct {
	directory *auth.Directory
	secret    string
	ttl       time.Duration
	logger    *zap.Logger
}

// tokenHandler authenticates the posted credentials and returns a signed JWT.
func (s *tokenService) tokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req TokenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	account, err := s.directory.Authenticate(req.Email, req.Password)
	if err != nil {
		s.logger.Info("Authentication failed", zap.String("email", req.Email))
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(account, s.secret, s.ttl)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to generate token"})
		return
	}

	s.logger.Info("Token issued", zap.String("sub", account.ID))
	writeJSON(w, http.StatusOK, TokenResponse{Token: token, Name: account.Name, Email: account.Email})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newMux(s *tokenService) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", s.tokenHandler)
	return mux
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "Config file path (YAML)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("authentication")

	directory, err := auth.NewDirectory(cfg.Users)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.AuthPort),
		Handler: newMux(&tokenService{
			directory: directory,
			secret:    cfg.JWTSecret,
			ttl:       cfg.TokenTTL,
			logger:    logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Authentication service running",
			zap.String("endpoint", srv.Addr),
			zap.Int("accounts", directory.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
