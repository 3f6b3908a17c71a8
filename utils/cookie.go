package utils

import (
	"net/http"
	"time"
)

// SessionCookie carries the session token between browser and API.
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func (s SessionCookie) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.TTL.Seconds()),
		Expires:  time.Now().Add(s.TTL),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s SessionCookie) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
