package httpmw

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	req := require.New(t)

	var got string
	h := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserIDFromCtx(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, " user-42 ")
	h.ServeHTTP(httptest.NewRecorder(), r)
	req.Equal("user-42", got)

	got = "stale"
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	req.Empty(got)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, strings.Repeat("x", 200))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	req.Equal(http.StatusBadRequest, rec.Code)
	req.Equal("application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	req.JSONEq(`{"error":"invalid X-User-ID"}`, rec.Body.String())
}
