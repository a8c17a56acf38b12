package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/auth_service/internal/apperr"
	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/service/token"
	"github.com/Skotchmaster/auth_service/internal/store"
)

// TokenHeader carries the access token on protected requests.
const TokenHeader = "x-access-token"

const userIDKey = "userID"

// Gate is the authorization chain for protected routes: verify the caller's
// token, then check the route's role predicate against the stored role set.
// It only ever reads; no gate outcome mutates user, role, or token state.
type Gate struct {
	Tokens *token.Service
	Store  *store.Store
}

// RequireToken authenticates the request. A missing header is 403, a bad or
// expired signature is 401; on success the subject user id is bound to the
// request context for the role checks downstream.
func (g *Gate) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(TokenHeader)
		if raw == "" {
			return echo.NewHTTPError(http.StatusForbidden, "No token provided!")
		}

		userID, err := g.Tokens.Verify(raw)
		if err != nil {
			l := logging.FromContext(c.Request().Context())
			if errors.Is(err, apperr.ErrExpiredToken) {
				l.Warn("token rejected", "reason", "expired")
			} else {
				l.Warn("token rejected", "reason", "invalid signature or claims")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized!")
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// RequireAnyRole enforces the route's role predicate. Role names match
// case-insensitively. Runs after RequireToken; a subject whose account no
// longer exists holds no roles and is rejected with the same message.
func (g *Gate) RequireAnyRole(failMessage string, names ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := c.Get(userIDKey).(uint)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, failMessage)
			}

			user, err := g.Store.FindByID(ctx, userID)
			if err != nil {
				if errors.Is(err, apperr.ErrUserNotFound) {
					logging.FromContext(ctx).Warn("authorization failed", "reason", "token subject no longer exists", "user_id", userID)
					return echo.NewHTTPError(http.StatusForbidden, failMessage)
				}
				return err
			}

			rs, err := g.Store.RolesOf(ctx, user)
			if err != nil {
				return err
			}

			for _, r := range rs {
				for _, want := range names {
					if strings.EqualFold(r.Name, want) {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, failMessage)
		}
	}
}

// UserID returns the user id bound by RequireToken, if any.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok
}
