package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/profiles/internal/core"
)

type contextKey int

const sessionKey contextKey = iota

// withSessionContext stores sess for the handlers below the session
// middleware.
func withSessionContext(ctx context.Context, sess *core.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// sessionFrom returns the session attached by the session middleware. It is
// nil below attachSession when the caller has no live session.
func sessionFrom(ctx context.Context) *core.Session {
	sess, _ := ctx.Value(sessionKey).(*core.Session)
	return sess
}

// lookupSession resolves the session cookie of r.
func (s *Server) lookupSession(r *http.Request) (*core.Session, error) {
	c, err := r.Cookie(s.cfg.Session.CookieName)
	if err != nil || c.Value == "" {
		return nil, core.ErrSessionNotFound
	}
	return s.sessions.Get(c.Value)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sess *core.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// openSession attaches the caller's session, opening a fresh one when the
// cookie is missing or its session expired. Only the form page opens
// sessions.
func (s *Server) openSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.lookupSession(r)
		if err != nil {
			sess = s.sessions.Open()
			s.setSessionCookie(w, sess)
		}
		next.ServeHTTP(w, r.WithContext(withSessionContext(r.Context(), sess)))
	})
}

// attachSession attaches the caller's session when it is live and passes the
// request on without one otherwise.
func (s *Server) attachSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, err := s.lookupSession(r); err == nil {
			r = r.WithContext(withSessionContext(r.Context(), sess))
		}
		next.ServeHTTP(w, r)
	})
}

// requireSession attaches the caller's session or fails with SES001.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.lookupSession(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSessionContext(r.Context(), sess)))
	})
}
