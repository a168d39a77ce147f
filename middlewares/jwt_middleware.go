package middlewares

import (
	"context"
	"net/http"
	"strings"

	"kpimanager/auth"
	"kpimanager/rbac"
	"kpimanager/utils"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ActorContextKey contextKey = "actor"

func JWTMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.HandleMessageResponse(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				utils.HandleMessageResponse(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})

			if err != nil {
				utils.HandleMessageResponse(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(*auth.Claims)
			if !ok || !token.Valid {
				utils.HandleMessageResponse(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			// A token minted with a role outside the closed set never
			// reaches a handler.
			role, err := rbac.ParseRole(claims.Role)
			if err != nil {
				utils.HandleMessageResponse(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			actor := rbac.Actor{
				ID:         claims.UserID,
				Email:      claims.Email,
				Role:       role,
				Department: claims.Department,
			}

			ctx := context.WithValue(r.Context(), ActorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActorFromContext returns the authenticated actor placed by
// JWTMiddleware. The zero Actor means the request skipped the middleware.
func GetActorFromContext(ctx context.Context) rbac.Actor {
	if actor, ok := ctx.Value(ActorContextKey).(rbac.Actor); ok {
		return actor
	}
	return rbac.Actor{}
}
