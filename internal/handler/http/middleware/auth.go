package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/samerkamel/aura-sub004/internal/handler/http/response"
	"github.com/samerkamel/aura-sub004/internal/pkg/jwt"
)

type claimsKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the caller's claims in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claimsMap, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			claims, err := jwt.ClaimsFromMap(claimsMap)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.Claims)
	return claims, ok
}

// UserID returns the authenticated user id, or "" outside AuthRequired.
func UserID(ctx context.Context) string {
	claims, _ := ClaimsFromContext(ctx)
	return claims.UserID
}
