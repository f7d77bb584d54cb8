package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/usecase"
)

type ctxKey string

const (
	sessionCtxKey ctxKey = "session"
	tenantCtxKey  ctxKey = "tenant"
)

func sessionFrom(ctx context.Context) *usecase.Session {
	session, _ := ctx.Value(sessionCtxKey).(*usecase.Session)
	return session
}

func tenantFrom(ctx context.Context) *model.Tenant {
	tenant, _ := ctx.Value(tenantCtxKey).(*model.Tenant)
	return tenant
}

// authMiddleware validates the bearer token and stores the session in the
// request context
func authMiddleware(uc *usecase.UseCases) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "No token provided"})
				return
			}

			session, err := uc.Auth.ValidateToken(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tenantMiddleware checks that the session belongs to the tenant named in
// the URL and resolves the tenant record into the request context
func tenantMiddleware(uc *usecase.UseCases) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hash := chi.URLParam(r, "tenantHash")
			session := sessionFrom(r.Context())

			if session == nil || session.TenantHash != hash {
				respondJSON(w, http.StatusForbidden, map[string]string{"error": "Access denied"})
				return
			}

			tenant, err := uc.Auth.ResolveTenant(r.Context(), hash)
			if err != nil {
				respondError(r.Context(), w, err)
				return
			}

			ctx := context.WithValue(r.Context(), tenantCtxKey, tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
