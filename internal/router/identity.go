package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
	mw "github.com/DjordjeVuckovic/support-rag/pkg/middleware"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

type UserLookup interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// RequireUser resolves the caller from the X-User-ID header and rejects unknown users.
func RequireUser(users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(mw.UserIDHeader))
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing "+mw.UserIDHeader+" header")
			}

			user, err := users.GetUser(c.Request().Context(), id)
			if err != nil {
				return err
			}
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func currentUser(c echo.Context) *domain.User {
	u, _ := c.Get(userContextKey).(*domain.User)
	return u
}
