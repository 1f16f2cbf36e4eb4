package server

import (
	"context"
	"net/http"

	"github.com/jonathan/resume-builder/internal/store"
)

// sessionCookie names the cookie carrying the opaque session ID.
const sessionCookie = "resume_session"

type contextKey string

const storeContextKey contextKey = "resume_store"

// withSession resolves the per-session Store for every request, creating
// a fresh seeded session (and setting the cookie) when none exists or
// the previous one expired.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var st *store.Store

		if cookie, err := r.Cookie(sessionCookie); err == nil {
			if existing, ok := s.sessions.Get(cookie.Value); ok {
				st = existing
			}
		}

		if st == nil {
			id, created := s.sessions.Create()
			st = created
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), storeContextKey, st)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionStore returns the Store attached to the request by withSession.
func (s *Server) sessionStore(r *http.Request) *store.Store {
	st, _ := r.Context().Value(storeContextKey).(*store.Store)
	return st
}
