// Package testutil holds request builders and response assertions shared by
// handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "checkpoint/pkg/domain-errors"
	"checkpoint/pkg/platform/httputil"
	"checkpoint/pkg/requestcontext"
)

// RequestOption adjusts a request built by NewRequest.
type RequestOption func(*http.Request) *http.Request

// AsActor sets the acting user the way the Actor middleware would.
func AsActor(actor string) RequestOption {
	return func(r *http.Request) *http.Request {
		return r.WithContext(requestcontext.WithActor(r.Context(), actor))
	}
}

// At pins the request time.
func At(t time.Time) RequestOption {
	return func(r *http.Request) *http.Request {
		return r.WithContext(requestcontext.WithTime(r.Context(), t))
	}
}

// NewRequest builds a request. A string body is sent as is; any other
// non-nil body is marshaled to JSON.
func NewRequest(t *testing.T, method, path string, body any, opts ...RequestOption) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err, "failed to marshal request body")
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		req = opt(req)
	}
	return req
}

// Do serves req on handler.
func Do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals the response body into T.
func Decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "failed to unmarshal response: %s", rec.Body.String())
	return v
}

// AssertDomainError checks that the response carries code with the status
// the error envelope maps it to.
func AssertDomainError(t *testing.T, rec *httptest.ResponseRecorder, code dErrors.Code) {
	t.Helper()
	assert.Equal(t, httputil.StatusFor(code), rec.Code, "unexpected status code")
	body := Decode[map[string]string](t, rec)
	assert.Equal(t, string(code), body["error"], "unexpected error code")
}
