// File: internal/middleware/auth.go
package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/arcanum-app/arcanum/internal/services"
)

// SessionCookieName is the cookie carrying the archive session token.
const SessionCookieName = "auth_token"

// RequireSession creates middleware that validates the session token cookie
// issued after the archive password gate.
func RequireSession(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if err := authService.ValidateSessionToken(cookie.Value); err != nil {
				log.Printf("[AuthMiddleware] Invalid token: %v", err)
				// Clear the stale cookie so the client re-authenticates.
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    "",
					Path:     "/",
					Expires:  time.Unix(0, 0),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
