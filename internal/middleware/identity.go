package middleware

// identity.go defines helper functions shared across middleware files.
// The service does not authenticate callers; the user identifier is
// taken as supplied, either from the X-User-Id header or the user_id
// query parameter.  When neither is present, "anon" is used so rate
// limit keys still partition sensibly.

import "github.com/labstack/echo/v4"

// clientUserID extracts the caller-supplied user identifier from the
// request.  It returns "anon" when none is present.
func clientUserID(c echo.Context) string {
	if v := c.Request().Header.Get("X-User-Id"); v != "" {
		return v
	}
	if v := c.QueryParam("user_id"); v != "" {
		return v
	}
	return "anon"
}
