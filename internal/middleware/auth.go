// Package middleware carries the session-aware request middleware.
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/newskeeper/newskeeper/internal/apperr"
	"github.com/newskeeper/newskeeper/internal/session"
)

type contextKey string

const (
	accountKey contextKey = "accountId"
	tokenKey   contextKey = "sessionToken"
)

// Sessions resolves a bearer token to an account id.
type Sessions interface {
	Account(ctx context.Context, token string) (uuid.UUID, error)
}

// BearerToken extracts the token from the Authorization header, or ""
// when absent.
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireSession resolves the bearer token and stores the account id on
// the request context. Requests without a live session get 401.
func RequireSession(sessions Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return apperr.NewUnauthorized("missing session token")
			}

			accountID, err := sessions.Account(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					return apperr.NewUnauthorized("session expired or invalid")
				}
				return err
			}

			c.Set(string(accountKey), accountID)
			c.Set(string(tokenKey), token)

			return next(c)
		}
	}
}

// AccountID returns the authenticated account for the request. Only
// valid behind RequireSession.
func AccountID(c echo.Context) uuid.UUID {
	id, _ := c.Get(string(accountKey)).(uuid.UUID)
	return id
}

// SessionToken returns the raw token behind RequireSession.
func SessionToken(c echo.Context) string {
	token, _ := c.Get(string(tokenKey)).(string)
	return token
}
