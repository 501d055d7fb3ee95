package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/gridfall/sweeper-server/internal/config"
)

type ctxKey int

const CtxPlayerClaims ctxKey = iota

// Auth parses the split-JWT cookie pair into PlayerClaims and stashes
// them on the request context. Requests without valid cookies pass
// through anonymously with the stale cookies cleared.
func Auth(log *logrus.Logger, cookies *config.Cookies) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				cookies.Clear(w)
				next.ServeHTTP(w, r)
				return
			}
			log.Debug("authenticated player ", claims.Username)
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PlayerClaims extracts claims stored by Auth, false for anonymous
// requests.
func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(CtxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}
