package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type ctxKey int

const requestIDKey ctxKey = 0

// requestID tags every request with an ID, reusing a well-formed incoming
// X-Request-ID header and generating a UUID otherwise. The ID is echoed in
// the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestIDFromContext returns the request ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestLogger returns l tagged with the request ID of ctx.
func requestLogger(ctx context.Context, l *log.Logger) *log.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.With("request_id", id)
	}
	return l
}
