// Package headers serves the request/response header routes: echoing
// inbound headers, checking a bearer token by literal comparison and
// setting custom response headers.
package headers

import (
	"sync"
)

// TokenSource holds the expected bearer token. It can be swapped at runtime
// when the configuration is reloaded.
type TokenSource struct {
	mu    sync.RWMutex
	token string
}

func NewTokenSource(token string) *TokenSource {
	return &TokenSource{token: token}
}

func (s *TokenSource) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *TokenSource) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Authorized reports whether the Authorization header value grants access.
// An empty configured token never matches.
func (s *TokenSource) Authorized(authorization string) bool {
	token := s.Token()
	return token != "" && authorization == "Bearer "+token
}
