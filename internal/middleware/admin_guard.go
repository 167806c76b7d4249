package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminGuard admits only admin tokens to the moderation routes.
func AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if role, _ := c.Get("role").(string); role != RoleAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "admin access only"})
		}
		return next(c)
	}
}
