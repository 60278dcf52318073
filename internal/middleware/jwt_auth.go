package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sunayp/medium-blog/backend/internal/auth"
)

const identityKey = "identity"

// Identity is the caller's resolved identity for the current request.
// Soft-auth routes see the zero value (anonymous) when no valid token is
// presented; strict-auth routes never run for anonymous callers.
type Identity struct {
	UserID string
}

func (id Identity) Authenticated() bool { return id.UserID != "" }

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

// CurrentIdentity returns the identity bound to the request by RequireAuth
// or OptionalAuth. Requests that passed through neither are anonymous.
func CurrentIdentity(c echo.Context) Identity {
	if id, ok := c.Get(identityKey).(Identity); ok {
		return id
	}
	return Anonymous
}

// RequireAuth enforces authentication: a missing or invalid bearer token
// rejects the request with 403 before the handler runs.
func RequireAuth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := resolveUserID(c, tokens)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "You are not logged in")
			}
			c.Set(identityKey, Identity{UserID: userID})
			return next(c)
		}
	}
}

// OptionalAuth resolves the caller's identity when a valid token is present
// but never rejects: anonymous callers continue with the anonymous identity.
// Used on public read endpoints so responses can still be personalized.
func OptionalAuth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, err := resolveUserID(c, tokens); err == nil {
				c.Set(identityKey, Identity{UserID: userID})
			}
			return next(c)
		}
	}
}

// resolveUserID extracts the bearer credential from the Authorization header
// and verifies it. The header may carry either "Bearer <token>" or the raw
// token, matching what the browser client sends.
func resolveUserID(c echo.Context, tokens *auth.TokenService) (string, error) {
	header := c.Request().Header.Get("Authorization")
	tokenStr := header
	if strings.HasPrefix(header, "Bearer ") {
		tokenStr = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenStr == "" {
		return "", echo.ErrForbidden
	}
	return tokens.Validate(tokenStr)
}
