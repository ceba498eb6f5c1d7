// Package testutil holds request and response helpers shared by handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookcatalog/internal/httpx"

	"github.com/stretchr/testify/require"
)

// NewRequest creates a request for tests. A string body is sent verbatim so
// malformed JSON can be exercised; any other non-nil body is JSON encoded.
func NewRequest(method, path string, body any) *http.Request {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		if b != "" {
			rd = strings.NewReader(b)
		}
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(method, path, rd)
	if rd != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// NewRequestWithHeaders is NewRequest without a body plus the given headers.
// The default User-Agent set by httptest is removed.
func NewRequestWithHeaders(method, path string, headers map[string]string) *http.Request {
	r := NewRequest(method, path, nil)
	r.Header.Del("User-Agent")
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

// Serve runs r through h and returns the recorded response.
func Serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// DecodeError decodes the error envelope and asserts it reports failure.
func DecodeError(t *testing.T, w *httptest.ResponseRecorder) httpx.ErrorResponse {
	t.Helper()
	var resp httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.False(t, resp.Success)
	return resp
}
