package api

import (
	"net/http"
	"strings"

	identity "github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/pkg/observability"
)

// SessionCookie names the cookie holding the session token.
const SessionCookie = "todolist_session"

// principalHandler is a handler that runs for an authenticated principal.
type principalHandler func(w http.ResponseWriter, r *http.Request, principal identity.Principal)

// withPrincipal tags the request context so log records carry the username.
func withPrincipal(r *http.Request, principal identity.Principal) *http.Request {
	return r.WithContext(observability.WithUsername(r.Context(), principal.Username))
}

// requireSession sends browsers without a valid session to the login page.
func (s *Server) requireSession(next principalHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		principal, err := s.auth.PrincipalFromSession(r.Context(), cookie.Value)
		if err != nil {
			s.logger.DebugContext(r.Context(), "session rejected", "error", err)
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, withPrincipal(r, principal), principal)
	})
}

// requireToken rejects API calls without a valid bearer token.
func (s *Server) requireToken(next principalHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", `Bearer realm="todolist"`)
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		principal, err := s.auth.PrincipalFromToken(token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="todolist", error="invalid_token"`)
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next(w, withPrincipal(r, principal), principal)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
