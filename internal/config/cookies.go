package config

import (
	"net/http"
	"strings"
	"time"
)

const GameCookie = "game"

type Cookies struct {
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func NewCookies(c *Config, j *JWT) *Cookies {
	sameSite := http.SameSiteStrictMode
	if c.Development() {
		sameSite = http.SameSiteLaxMode
	}
	return &Cookies{
		Secure:   c.Production(),
		SameSite: sameSite,
		jwt:      j,
	}
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     GameCookie,
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// Refresh hands the client a token for gameID.
func (c *Cookies) Refresh(w http.ResponseWriter, gameID string) (string, error) {
	now := time.Now()
	token, err := c.jwt.Sign(gameID, now)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     GameCookie,
		Path:     "/",
		Value:    token,
		Expires:  now.Add(c.jwt.TokenLifetime()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return token, nil
}

// ParseGameClaims reads the game token from the cookie, falling back to a
// bearer Authorization header for non-browser clients.
func (c *Cookies) ParseGameClaims(r *http.Request) (*GameClaims, error) {
	if cookie, err := r.Cookie(GameCookie); err == nil {
		return c.jwt.Parse(cookie.Value)
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && token != "" {
		return c.jwt.Parse(token)
	}
	return nil, http.ErrNoCookie
}
