package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// CookieManager binds session tokens to HTTP cookies with fixed transport
// attributes. The Secure flag comes from deployment configuration so the
// cookie is never sent over plain HTTP outside local development.
type CookieManager struct {
	secure bool
}

// NewCookieManager creates a cookie manager.
func NewCookieManager(secure bool) *CookieManager {
	return &CookieManager{secure: secure}
}

// Attach sets the session cookie on the response.
func (m *CookieManager) Attach(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear deletes the session cookie. Used on logout and whenever the route
// guard sees an invalid or expired token.
func (m *CookieManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
