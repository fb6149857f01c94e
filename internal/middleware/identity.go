package middleware

// identity.go holds helpers shared across middleware files for
// identifying the requesting user. JWTAuth stores the raw sub claim in
// the context; depending on how the token was minted that value may be
// a float64, an integer type or a string.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a stable string form of the authenticated user's
// ID for use in rate-limit and cache keys. Unauthenticated requests all
// share the "anon" identity.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	}
	return "anon"
}
