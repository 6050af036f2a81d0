package httpmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/cwrk-planet/meeting-service/pkg/httputil"
)

type ctxKey string

const (
	HeaderUserID = "X-User-ID"

	ctxKeyUserID ctxKey = "user_id"
)

// Identity кладёт X-User-ID в контекст. Заголовок необязателен:
// аутентификацию делает шлюз перед сервисом.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if uid == "" {
			next.ServeHTTP(w, r)
			return
		}
		if len(uid) > 128 {
			httputil.ErrorMessage(w, http.StatusBadRequest, "invalid X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUserID).(string); ok {
		return v
	}
	return ""
}
