package http

import (
	"context"
	"net/http"

	"github.com/classmeet/classmeet/internal/domain"
	"github.com/classmeet/classmeet/internal/service"
	"github.com/classmeet/classmeet/pkg/httpx"
	"github.com/classmeet/classmeet/pkg/slogx"
)

type ctxKey string

const ctxKeyActor ctxKey = "actor"

// AuthnMiddleware resolves the Authorization header into an AuthContext and
// injects it for downstream handlers. The raw header goes to the service
// untouched; all shape validation happens there.
func AuthnMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			actor, err := auth.Authenticate(ctx, service.BearerToken{
				Header: r.Header.Get("Authorization"),
			})
			if err != nil {
				log.Warn("request authentication failed", "err", err)
				writeBearerError(w)
				return
			}

			ctx = context.WithValue(ctx, ctxKeyActor, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFromCtx returns the authenticated actor placed by AuthnMiddleware.
func actorFromCtx(ctx context.Context) (domain.AuthContext, bool) {
	actor, ok := ctx.Value(ctxKeyActor).(domain.AuthContext)
	return actor, ok
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid or missing access token")
}
