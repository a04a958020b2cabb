package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/access"
)

// IdentityOf returns the caller identity attached by the session
// middleware, or the anonymous identity.
func IdentityOf(c echo.Context) access.Identity {
	return access.FromContext(c.Request().Context())
}

// setIdentity stores id on the request context.
func setIdentity(c echo.Context, id access.Identity) {
	r := c.Request()
	c.SetRequest(r.WithContext(access.WithIdentity(r.Context(), id)))
}

// userKey identifies the caller in rate-limit keys: the user id, or "anon".
func userKey(c echo.Context) string {
	id := IdentityOf(c)
	if !id.Authenticated() {
		return "anon"
	}
	return strconv.FormatUint(id.UserID, 10)
}
