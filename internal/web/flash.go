package web

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookieName = "flash"

// Flash is a one-time notice carried across a redirect. Category matches
// the styling classes used by the templates: success, danger, info.
type Flash struct {
	Category string
	Message  string
}

// SetFlash queues a notice for the next rendered page.
func SetFlash(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears the pending notice, if any.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	category, message, found := strings.Cut(raw, "|")
	if !found || message == "" {
		return nil
	}
	return &Flash{Category: category, Message: message}
}
