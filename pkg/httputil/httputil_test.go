package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cwrk-planet/meeting-service/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestMiddlewareRequestID(t *testing.T) {
	req := require.New(t)

	var seen string
	h := MiddlewareRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	req.NotEmpty(seen)
	req.Equal(seen, rec.Header().Get(HeaderRequestID))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	req.Equal("abc", seen)

	for _, bad := range []string{"a b", "id\nfake=1", strings.Repeat("x", maxRequestIDLen+1)} {
		r = httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, bad)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		req.NotEqual(bad, seen)
		req.Equal(seen, rec.Header().Get(HeaderRequestID))
	}
}

func TestError_MapsStatus(t *testing.T) {
	req := require.New(t)

	rec := httptest.NewRecorder()
	Error(context.Background(), rec, fmt.Errorf("meeting %w", errs.ErrNotFound))
	req.Equal(http.StatusNotFound, rec.Code)

	var body map[string]string
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	req.Equal("meeting not found", body["error"])

	rec = httptest.NewRecorder()
	Error(context.Background(), rec, errors.New("db password leaked"))
	req.Equal(http.StatusInternalServerError, rec.Code)
	req.NotContains(rec.Body.String(), "password")
}

func TestMiddlewareLogging_KeepsBody(t *testing.T) {
	req := require.New(t)

	var got string
	h := MiddlewareLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var v map[string]string
		_ = json.NewDecoder(r.Body).Decode(&v)
		got = v["k"]
		w.WriteHeader(http.StatusTeapot)
	}))

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"k":"v"}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	req.Equal("v", got)
	req.Equal(http.StatusTeapot, rec.Code)
}
