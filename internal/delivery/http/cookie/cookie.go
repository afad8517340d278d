// Package cookie owns the names and attributes of the cookies the site sets.
package cookie

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// SessionName carries the signed session token.
	SessionName = "token"
	// OAuthStateName carries the anti-forgery state of a Google sign-in.
	OAuthStateName = "oauthstate"

	oauthStateTTL = 10 * time.Minute
)

func secure(c echo.Context) bool {
	req := c.Request()

	return req.TLS != nil || req.Header.Get(echo.HeaderXForwardedProto) == "https"
}

// SetSession stores the session token for ttl.
func SetSession(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure(c),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl / time.Second),
	})
}

// ClearSession expires the session cookie.
func ClearSession(c echo.Context) {
	expire(c, SessionName)
}

// Session returns the session token, or "" when the cookie is absent.
func Session(c echo.Context) string {
	return value(c, SessionName)
}

// SetOAuthState stores state for the duration of a consent round-trip.
func SetOAuthState(c echo.Context, state string) {
	c.SetCookie(&http.Cookie{
		Name:     OAuthStateName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure(c),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(oauthStateTTL / time.Second),
	})
}

// TakeOAuthState returns the stored state and expires the cookie.
func TakeOAuthState(c echo.Context) string {
	state := value(c, OAuthStateName)
	expire(c, OAuthStateName)

	return state
}

func value(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}

	return ck.Value
}

func expire(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
