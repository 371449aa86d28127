package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/identity"
)

const (
	// ActorKeyCookie carries the stable per-browser key that scopes carts
	// and guest continuations. Issued on first contact, guest or not.
	ActorKeyCookie = "padharo_actor"

	// SessionCookie carries the opaque identity session token.
	SessionCookie = "padharo_session"

	actorContextKey contextKey = "actor"
)

// WithIdentity resolves the requester into a domain.Actor and stores it in
// the context. Resolution failures degrade to guest; the checkout
// coordinator re-checks identity at submit time anyway.
func WithIdentity(provider identity.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := domain.Actor{Key: actorKey(w, r)}

			if token := sessionToken(r); token != "" {
				resolution, err := provider.Resolve(r.Context(), token)
				if err != nil {
					GetLogger(r.Context()).Warn("identity resolution failed",
						"error", err)
				} else if resolution.Authenticated {
					actor.UserID = resolution.UserID
					actor.Authenticated = true
				}
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor returns a context carrying the actor. Used by tests and callers
// that bypass the HTTP chain.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// GetActor retrieves the resolved actor from the context. The zero Actor
// (guest without a key) comes back when the middleware did not run.
func GetActor(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorContextKey).(domain.Actor); ok {
		return actor
	}
	return domain.Actor{}
}

// actorKey reads the per-browser key cookie, minting and setting one on
// first contact.
func actorKey(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ActorKeyCookie); err == nil && c.Value != "" {
		return c.Value
	}

	key := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     ActorKeyCookie,
		Value:    key,
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return key
}

// sessionToken extracts the identity token from the Authorization header or
// the session cookie.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
