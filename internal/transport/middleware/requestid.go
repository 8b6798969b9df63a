package middleware

import (
	"net/http"

	"github.com/hanifn/expense-log/pkg/logger"

	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
)

// TraceID propagates the caller's X-Trace-ID header, falling back to the
// chi request id and finally a fresh uuid, and binds the id to the
// request-scoped logger so every log line for the request carries it.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = chiMiddleware.GetReqID(r.Context())
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.WithFields(r.Context(), "trace_id", traceID, "path", r.URL.Path)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
