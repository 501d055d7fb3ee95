package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Cookies manages the split-JWT cookie pair: "auth" holds the readable
// header.payload for the frontend, "sign" holds the signature and stays
// HttpOnly. Both must be present to reconstruct the token.
type Cookies struct {
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func NewCookies(jwt *JWT) *Cookies {
	return &Cookies{
		Secure:   !Development(),
		SameSite: http.SameSiteNoneMode,
		jwt:      jwt,
	}
}

func (c *Cookies) Refresh(w http.ResponseWriter, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token")
	}
	expires := time.Now().Add(c.jwt.Lifetime())
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    parts[0] + "." + parts[1],
		Expires:  expires,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    parts[2],
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return nil
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, cookie := range []http.Cookie{
		{Name: "auth", Path: "/", MaxAge: -1, Secure: c.Secure, SameSite: c.SameSite},
		{Name: "sign", Path: "/", MaxAge: -1, HttpOnly: true, Secure: c.Secure, SameSite: c.SameSite},
	} {
		http.SetCookie(w, &cookie)
	}
}

func (c *Cookies) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return nil, err
	}
	return c.jwt.ParsePlayerClaims(authCookie.Value + "." + signCookie.Value)
}
