package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/access"
	"github.com/iliyamo/course-enrollment/internal/apperr"
)

// Require admits a request only if the caller satisfies every predicate.
// Anonymous callers get 401, authenticated callers lacking a capability
// get 403 with the failing predicate's message.
func Require(ps ...access.Predicate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityOf(c)
			if !id.Authenticated() {
				return apperr.Auth("auth.required")
			}
			if p, denied := access.FirstDenied(id, ps...); denied {
				return apperr.Forbidden(p.Key)
			}
			return next(c)
		}
	}
}

var (
	// Authenticated admits any logged-in user.
	Authenticated = Require(access.AuthenticatedUser)
	// AdminOnly admits administrators.
	AdminOnly = Require(access.AdminUser)
	// MemberOnly admits logged-in non-admin users.
	MemberOnly = Require(access.MemberUser)
)
