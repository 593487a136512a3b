package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"kivutrips/internal/errors"
	"kivutrips/internal/model"
)

// Guard returns middleware that rejects requests without a valid session
// token. A missing token, including an Authorization header that carries
// no Bearer token, yields 401; a token with a bad signature, a bad type
// or past expiry yields 403. On success the decoded claims are available
// through ClaimsFrom.
func Guard(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Message: "unauthorized",
					Code:    "MISSING_TOKEN",
				})
			}
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Message: "forbidden",
				Code:    "INVALID_TOKEN",
			})
		},
	})
}

// RequireAdmin rejects requests whose session claims do not carry the
// admin role. Must run after Guard.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok || claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Message: "forbidden",
				Code:    "ADMIN_REQUIRED",
			})
		}
		return next(c)
	}
}

// ClaimsFrom extracts the decoded session claims the guard attached to
// the request context.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}
