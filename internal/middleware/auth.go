package middleware

import (
	"context"
	"net/http"
	"strings"

	"nagarsetu-backend/internal/auth"
	"nagarsetu-backend/pkg/utils"
)

type contextKey string

const adminClaimsKey contextKey = "admin_claims"

type AuthMiddleware struct {
	jwt *auth.JWTManager
}

func NewAuthMiddleware(jwt *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// AuthenticateAdmin guards the admin route group. Expects a Bearer token
// issued by the admin login flow; temp two-factor tokens are rejected.
func (m *AuthMiddleware) AuthenticateAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			utils.Message(w, http.StatusUnauthorized, "Authorization required")
			return
		}

		claims, err := m.jwt.ValidateAdminToken(token, false)
		if err != nil {
			utils.Message(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminFromContext returns the authenticated admin claims, if present.
func AdminFromContext(ctx context.Context) (*auth.AdminClaims, bool) {
	claims, ok := ctx.Value(adminClaimsKey).(*auth.AdminClaims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
