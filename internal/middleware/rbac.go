package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Account roles carried in the token.
const (
	RoleFan     = "fan"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// AccountRoles are the roles a signed-up user can hold.
var AccountRoles = []string{RoleFan, RoleCreator, RoleAdmin}

// RequireRoles refuses requests whose token role is not in roles. Mount it
// after JWT.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; ok {
				return next(c)
			}
			msg := "role not permitted"
			if role == "" {
				msg = "token carries no role"
			}
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": msg})
		}
	}
}
