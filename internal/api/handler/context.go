package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driveway/rental-system/internal/api/middleware"
	"github.com/driveway/rental-system/internal/core/domain"
)

// principal is the caller identity carried by the bearer token.
type principal struct {
	ID    string
	Role  domain.Role
	Name  string
	Email string
	Phone string
}

func (p principal) requester() domain.Requester {
	return domain.Requester{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone}
}

// ctxPrincipal extracts the identity injected by the Auth middleware. A missing
// user id means the middleware did not run.
func ctxPrincipal(c echo.Context) (principal, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get(middleware.CtxRole).(string)
	name, _ := c.Get(middleware.CtxName).(string)
	email, _ := c.Get(middleware.CtxEmail).(string)
	phone, _ := c.Get(middleware.CtxPhone).(string)

	return principal{ID: id, Role: domain.Role(role), Name: name, Email: email, Phone: phone}, nil
}
