package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/config"
)

type CtxKey int

const (
	CtxGameClaims CtxKey = iota
)

// GameToken puts the caller's game claims, when present and valid, into the
// request context. Invalid tokens are cleared and the request proceeds
// without claims.
func GameToken(log *logrus.Logger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseGameClaims(r)
			if err != nil {
				if err != http.ErrNoCookie {
					log.WithError(err).Debug("discarding game token")
					cookies.Clear(w)
				}
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxGameClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GameClaims(r *http.Request) (*config.GameClaims, bool) {
	claims, ok := r.Context().Value(CtxGameClaims).(*config.GameClaims)
	return claims, ok
}
