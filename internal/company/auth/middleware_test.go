package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMiddleware(t *testing.T) {
	const (
		validSecret   = "test-secret"
		invalidSecret = "wrong-secret"
		userID        = "test-user"
	)

	// Helper to generate test tokens
	generateToken := func(secret string, expiresAt time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": userID,
			"exp": expiresAt.Unix(),
		})
		tokenString, _ := token.SignedString([]byte(secret))
		return tokenString
	}

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
	}{
		{
			name:       "protected route valid token",
			method:     http.MethodGet,
			path:       "/v1/companies",
			header:     "Bearer " + generateToken(validSecret, time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
		},
		{
			name:       "protected post valid token",
			method:     http.MethodPost,
			path:       "/v1/companies",
			header:     "Bearer " + generateToken(validSecret, time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
		},
		{
			name:       "protected route invalid signature",
			method:     http.MethodGet,
			path:       "/v1/dashboard/summary",
			header:     "Bearer " + generateToken(invalidSecret, time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "protected route expired token",
			method:     http.MethodGet,
			path:       "/v1/companies/1",
			header:     "Bearer " + generateToken(validSecret, time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "protected route missing header",
			method:     http.MethodGet,
			path:       "/v1/companies",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unprotected route no token",
			method:     http.MethodGet,
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if isProtectedRequest(r) {
					claims, ok := ClaimsFromContext(r.Context())
					if !ok || claims["sub"] != userID {
						http.Error(w, "claims not in context", http.StatusInternalServerError)
						return
					}
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			HTTPMiddleware(validSecret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   bool
	}{
		{name: "valid authorization header", header: "Bearer valid-token", wantToken: "valid-token"},
		{name: "missing authorization header", wantErr: true},
		{name: "malformed authorization header", header: "InvalidPrefix valid-token", wantErr: true},
		{name: "empty bearer token", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/companies", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := extractTokenFromHeader(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
