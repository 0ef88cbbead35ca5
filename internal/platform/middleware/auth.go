package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"carebridge/pkg/domain"
	"carebridge/pkg/requestcontext"
)

// Claims is what the token validator hands back to the middleware.
type Claims struct {
	AccountID domain.AccountID
	Role      domain.Role
}

// TokenValidator validates a bearer token and returns the principal it names.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + errCode + `","error_description":"` + errDesc + `"}`))
}

// RequireAuth rejects requests without a valid bearer token and places the
// principal (account id, role) plus a device summary in the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := requestcontext.WithAccount(r.Context(), claims.AccountID, claims.Role)
			if ua := r.Header.Get("User-Agent"); ua != "" {
				ctx = requestcontext.WithDevice(ctx, summarizeDevice(ua))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards a subtree to principals holding one of the given roles.
// Mount after RequireAuth.
func RequireRole(logger *slog.Logger, roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := requestcontext.Role(r.Context())
			if !allowed[role] {
				logger.WarnContext(r.Context(), "forbidden - role mismatch",
					"role", role.String(),
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// summarizeDevice reduces a raw User-Agent to "Browser x.y on OS" for audit
// events; raw UA strings are too noisy to log.
func summarizeDevice(ua string) string {
	parsed := useragent.New(ua)
	name, version := parsed.Browser()
	if name == "" {
		return "unknown device"
	}
	summary := name
	if version != "" {
		summary += " " + version
	}
	if os := parsed.OS(); os != "" {
		summary += " on " + os
	}
	return summary
}
