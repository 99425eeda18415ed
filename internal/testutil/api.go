package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Server is a fake console API backed by httptest. Fixtures are keyed by
// request path with the query string ignored, so paged endpoints register
// once. Paths without a fixture answer 404, which the gateway under test
// reports as absence.
type Server struct {
	t        *testing.T
	srv      *httptest.Server
	mu       sync.Mutex
	body     map[string][]byte
	code     map[string]int
	hits     map[string]int
	lastAuth string
}

// StartAPI boots the fake server and closes it when the test finishes.
func StartAPI(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		t:    t,
		body: make(map[string][]byte),
		code: make(map[string]int),
		hits: make(map[string]int),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) URL() string { return s.srv.URL }

// Respond registers a JSON fixture for a path.
func (s *Server) Respond(path string, payload interface{}) {
	s.t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		s.t.Fatalf("failed to marshal fixture for %s: %v", path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body[path] = data
	delete(s.code, path)
}

// RespondRaw registers a literal body for a path, useful for malformed
// payload scenarios.
func (s *Server) RespondRaw(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body[path] = []byte(body)
	delete(s.code, path)
}

// Fail makes a path answer with the given status and no body.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code[path] = status
	delete(s.body, path)
}

// Forget removes any fixture for a path so it answers 404 again.
func (s *Server) Forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.body, path)
	delete(s.code, path)
}

// Hits reports how many requests a path has received.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// LastAuthorization returns the Authorization header seen on the most
// recent request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	path := r.URL.Path
	s.hits[path]++
	s.lastAuth = r.Header.Get("Authorization")
	body, hasBody := s.body[path]
	status, hasStatus := s.code[path]
	s.mu.Unlock()

	if hasStatus {
		w.WriteHeader(status)
		return
	}
	if !hasBody {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
