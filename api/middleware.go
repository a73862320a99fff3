package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwellhq/inkwell/domain"
)

const identityKey = "identity"

const bearerPrefix = "Bearer "

// AuthMiddleware extracts the bearer token, validates it, and resolves the
// subject against the credential store. Missing header, invalid token, and
// a vanished user all fail the same way: 401 with a Bearer challenge.
func (h *Handler) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return h.unauthorized(c)
		}

		subject, err := h.tokens.Validate(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return h.unauthorized(c)
		}

		// The token only carries a username claim; if the user is gone the
		// token is worthless, and we answer 401 rather than 404 to avoid
		// confirming the token was otherwise valid.
		user, err := h.store.FindUserByUsername(c.Request().Context(), subject)
		if err != nil {
			return h.unauthorized(c)
		}

		c.Set(identityKey, user)
		return next(c)
	}
}

// currentUser returns the identity resolved by AuthMiddleware. Only valid
// on protected routes.
func currentUser(c echo.Context) *domain.User {
	return c.Get(identityKey).(*domain.User)
}

func (h *Handler) unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "could not validate credentials"})
}
