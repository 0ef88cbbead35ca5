package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"carebridge/pkg/domain"
	"carebridge/pkg/requestcontext"
)

type stubValidator struct {
	claims *Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*Claims, error) { return s.claims, s.err }

func testLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestRequireAuth(t *testing.T) {
	okClaims := &Claims{AccountID: domain.AccountID(uuid.New()), Role: domain.RoleDonor}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, okClaims.AccountID, requestcontext.AccountID(r.Context()))
		assert.Equal(t, domain.RoleDonor, requestcontext.Role(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid token passes principal through", func(t *testing.T) {
		h := RequireAuth(stubValidator{claims: okClaims}, testLogger())(next)
		req := httptest.NewRequest(http.MethodGet, "/donations/my", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		h := RequireAuth(stubValidator{claims: okClaims}, testLogger())(next)
		req := httptest.NewRequest(http.MethodGet, "/donations/my", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		h := RequireAuth(stubValidator{err: errors.New("expired")}, testLogger())(next)
		req := httptest.NewRequest(http.MethodGet, "/donations/my", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("matching role allowed", func(t *testing.T) {
		h := RequireRole(testLogger(), domain.RoleDonor)(next)
		req := httptest.NewRequest(http.MethodPost, "/donations", nil)
		ctx := requestcontext.WithAccount(req.Context(), domain.AccountID(uuid.New()), domain.RoleDonor)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("wrong role forbidden", func(t *testing.T) {
		h := RequireRole(testLogger(), domain.RoleAdmin)(next)
		req := httptest.NewRequest(http.MethodGet, "/donations", nil)
		ctx := requestcontext.WithAccount(req.Context(), domain.AccountID(uuid.New()), domain.RoleDonor)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated forbidden", func(t *testing.T) {
		h := RequireRole(testLogger(), domain.RoleDonor)(next)
		req := httptest.NewRequest(http.MethodGet, "/donations", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestSummarizeDevice(t *testing.T) {
	got := summarizeDevice("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	assert.Contains(t, got, "Chrome")
	assert.Contains(t, got, "on Windows")
}
