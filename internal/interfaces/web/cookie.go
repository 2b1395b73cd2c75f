package web

import (
	"net/http"
	"net/url"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/session"
)

const SessionCookieName = "fp_session"

type CookieConfig struct {
	Secure bool
}

func (c CookieConfig) set(w http.ResponseWriter, s session.Session) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !s.ExpiresAt.IsZero() {
		cookie.Expires = s.ExpiresAt
		cookie.MaxAge = int(time.Until(s.ExpiresAt).Seconds())
	}
	http.SetCookie(w, cookie)
}

func (c CookieConfig) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

const flashCookieName = "fp_flash"

type flashKind string

const (
	flashNotice flashKind = "n"
	flashError  flashKind = "e"
)

// setFlash keeps a one-shot message for the page a POST redirects to.
func (c CookieConfig) setFlash(w http.ResponseWriter, kind flashKind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    string(kind) + url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// takeFlash reads and clears the pending flash message.
func (c CookieConfig) takeFlash(w http.ResponseWriter, r *http.Request) (flashKind, string) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || len(cookie.Value) < 2 {
		return "", ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	message, err := url.QueryUnescape(cookie.Value[1:])
	if err != nil {
		return "", ""
	}
	switch kind := flashKind(cookie.Value[:1]); kind {
	case flashNotice, flashError:
		return kind, message
	default:
		return "", ""
	}
}
