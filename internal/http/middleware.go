package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ArsemaYemiru/ak-storefront/internal/session"
	"github.com/google/uuid"
)

type contextKey string

const (
	storesKey    contextKey = "session_stores"
	requestIDKey contextKey = "request_id"
)

const sessionCookie = "ak_session"

// sessionCookieMaxAge matches the persistence TTL so the cookie and the
// durable slots age out together.
const sessionCookieMaxAge = 90 * 24 * 60 * 60

// SessionMiddleware identifies the browsing session by cookie, minting one
// for first-time visitors, and materializes that session's store pair into
// the request context.
func SessionMiddleware(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			} else {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   sessionCookieMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			stores := manager.Get(r.Context(), sessionID)
			ctx := context.WithValue(r.Context(), storesKey, stores)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func storesFromContext(ctx context.Context) *session.Stores {
	if stores, ok := ctx.Value(storesKey).(*session.Stores); ok {
		return stores
	}
	return nil
}
