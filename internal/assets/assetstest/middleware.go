package assetstest

import (
	"crypto/subtle"
	"net/http"
)

// securityHeadersMiddleware sets the headers Jira Cloud sends on every response.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// recordMiddleware keeps a clone of every request, before authentication.
func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(r.Context()))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// basicAuthMiddleware checks the email / API token pair.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing authorization")
			return
		}
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.Email)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.Token)) == 1
		if !userOK || !passOK {
			writeError(w, http.StatusUnauthorized, "invalid email or API token")
			return
		}
		if f, ok := s.failureFor(r.URL.Path); ok {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}
