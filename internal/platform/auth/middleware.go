package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// UserContextKey is where the authenticated user lives on the echo context.
const UserContextKey = "auth.user"

// Middleware verifies the bearer session token and attaches the user to the
// request context. Requests without a valid session are rejected.
func Middleware(sessions *SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			user, err := sessions.Verify(token)
			if err != nil {
				log.Debug().Err(err).Msg("session verification failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}
			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// DevAuthMiddleware injects a clinician identity on every request. Only
// wired when ENV=development and no session secret is set.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(UserContextKey, &User{
				ID:    "clinician-1",
				Email: "dr.smith@clinic.com",
				Role:  RoleClinician,
			})
			return next(c)
		}
	}
}

// RequireRole rejects requests whose user holds none of the given roles.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, r := range roles {
				if user.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

// CurrentUser returns the authenticated user placed on the context by
// Middleware or DevAuthMiddleware.
func CurrentUser(c echo.Context) (*User, bool) {
	user, ok := c.Get(UserContextKey).(*User)
	return user, ok && user != nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
