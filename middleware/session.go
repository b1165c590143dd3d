package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	SessionContextKey = contextKey("session")
	sessionCookie     = "storefront_session"
)

// Sessions resolves which cart a request belongs to. Signed-in users are keyed
// by email; guests get a random id kept in a signed cookie.
type Sessions struct {
	store sessions.Store
}

// NewSessions signs guest cookies with key. Secure cookies are sent with
// SameSite=None so cross-site storefronts keep the cart.
func NewSessions(key string, secure bool, maxAge int) *Sessions {
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}
	return &Sessions{store: store}
}

// Middleware attaches the session id to the request context.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFrom(r); ok {
			ctx := context.WithValue(r.Context(), SessionContextKey, "user:"+claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		// a cookie signed with an old key decodes with an error but still
		// yields a fresh session
		sess, err := s.store.Get(r, sessionCookie)
		if err != nil {
			zap.L().Debug("discarding unreadable session cookie", zap.Error(err))
		}
		id, ok := sess.Values["id"].(string)
		if !ok || id == "" {
			id = uuid.NewString()
			sess.Values["id"] = id
			if err := sess.Save(r, w); err != nil {
				zap.L().Error("failed to save session", zap.Error(err))
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
		}
		ctx := context.WithValue(r.Context(), SessionContextKey, "guest:"+id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the cart owner of the request.
func SessionID(r *http.Request) string {
	id, _ := r.Context().Value(SessionContextKey).(string)
	return id
}
