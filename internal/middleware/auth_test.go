package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mathboard/internal/domain"
	"mathboard/internal/domain/models"
	"mathboard/internal/httputil"
)

type stubVerifier struct {
	claims *models.AccessClaims
	err    error
}

func (s *stubVerifier) VerifyToken(string) (*models.AccessClaims, error) {
	return s.claims, s.err
}

func (s *stubVerifier) Close() error { return nil }

func authedClaims(userID string) *models.AccessClaims {
	c := &models.AccessClaims{Role: "authenticated"}
	c.Subject = userID
	return c
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		authHeader string
		verifier   *stubVerifier
		wantStatus int
		wantUserID string
	}{
		{
			name:       "mutating request without token",
			method:     http.MethodPost,
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "read without token passes through",
			method:     http.MethodGet,
			verifier:   &stubVerifier{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid token",
			method:     http.MethodPost,
			authHeader: "Bearer bad",
			verifier:   &stubVerifier{err: domain.ErrUnauthorized},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "guest cannot mutate",
			method:     http.MethodPost,
			authHeader: "Bearer anon",
			verifier:   &stubVerifier{claims: &models.AccessClaims{Role: "anon", IsAnonymous: true}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "guest can read",
			method:     http.MethodGet,
			authHeader: "Bearer anon",
			verifier:   &stubVerifier{claims: &models.AccessClaims{Role: "anon", IsAnonymous: true}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "registered user mutates with identity attached",
			method:     http.MethodPost,
			authHeader: "Bearer good",
			verifier:   &stubVerifier{claims: authedClaims("user-1")},
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = httputil.GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/api/discussions", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			Auth(tt.verifier)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantUserID != "" && gotUserID != tt.wantUserID {
				t.Errorf("userID in context = %q, want %q", gotUserID, tt.wantUserID)
			}
		})
	}
}
