// Package assetstest runs an in-process Jira Assets API for tests.
package assetstest

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/lovincyrus/jira-assets/internal/assets"
)

const (
	DefaultEmail = "ops@example.com"
	DefaultToken = "test-api-token"
)

// Server serves the four Insight endpoints from in-memory fixtures.
// Fixtures may be changed between requests but not during one.
type Server struct {
	*httptest.Server

	Email string
	Token string

	Schemas []assets.Schema
	// Objects holds the objects of each schema, keyed by schema id.
	Objects map[int][]assets.Object
	// Search maps an IQL string to its result. Unknown queries return no entries.
	Search map[string][]assets.Object
	// SchemaListEnvelope wraps the schema list in {"objectschemas": [...]}.
	SchemaListEnvelope bool

	mu       sync.Mutex
	requests []*http.Request
	failures map[string]failure
}

type failure struct {
	status  int
	message string
}

// New starts a server accepting DefaultEmail / DefaultToken.
// It is closed when the test ends.
func New(t interface{ Cleanup(func()) }) *Server {
	s := &Server{
		Email:    DefaultEmail,
		Token:    DefaultToken,
		Objects:  make(map[int][]assets.Object),
		Search:   make(map[string][]assets.Object),
		failures: make(map[string]failure),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.Server = httptest.NewServer(s.recordMiddleware(securityHeadersMiddleware(s.basicAuthMiddleware(mux))))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	base := assets.APIPath
	mux.HandleFunc("GET "+base+"/objectschema/list", s.handleListSchemas)
	mux.HandleFunc("GET "+base+"/objectschema/{id}", s.handleGetSchema)
	mux.HandleFunc("GET "+base+"/objectschema/{id}/objects", s.handleListObjects)
	mux.HandleFunc("GET "+base+"/iql/objects", s.handleSearch)
}

// Fail makes every request to path (without the API prefix, e.g.
// "/objectschema/list") answer with status and a Jira error body.
func (s *Server) Fail(path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[assets.APIPath+path] = failure{status: status, message: message}
}

// Requests returns the number of requests received, authorised or not.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request, or nil.
func (s *Server) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// AllRequests returns every request received, oldest first.
func (s *Server) AllRequests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) failureFor(path string) (failure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.failures[path]
	return f, ok
}
