package api

import (
	"net/http"
	"time"
)

// refreshCookieName is the cookie that carries the refresh token.
const refreshCookieName = "refreshToken"

// setRefreshCookie attaches the refresh token to the response as an
// http-only, strict-same-site cookie. Secure is only set in production so
// local development over plain HTTP still works.
func setRefreshCookie(w http.ResponseWriter, token string, lifetime time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRefreshCookie expires the refresh cookie immediately. Clearing is the
// only revocation mechanism there is; the token itself stays valid until its
// embedded expiry.
func clearRefreshCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
