package middleware

import (
	"context"
	"net/http"

	"github.com/kmatveev/brickpop-server/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// Auth attaches parsed player claims to the request context. Requests
// without valid cookies pass through anonymously with the cookies cleared.
func Auth(cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				cookies.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
