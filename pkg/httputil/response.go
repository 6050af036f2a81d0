package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cwrk-planet/meeting-service/pkg/errs"
)

type envelope map[string]any

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response failed", slog.Any("err", err))
	}
}

// ErrorMessage — ответ вида {"error": "..."}.
func ErrorMessage(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, envelope{"error": msg})
}

// Error мапит ошибку в статус через errs.ToHTTP. 5xx логируются, текст наружу не уходит.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status := errs.ToHTTP(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		reqID, _ := FromContext(ctx)
		slog.ErrorContext(ctx, "request failed", slog.String("req_id", reqID), slog.Any("err", err))
		msg = http.StatusText(status)
	}
	ErrorMessage(w, status, msg)
}
