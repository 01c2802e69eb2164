package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-board/pkg/logger"
	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-ID"

// RequestID installs base, tagged with a trace id, as the request logger and
// echoes the id back in the response.
func RequestID(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			lg := base
			if lg == nil {
				lg = logger.From(r.Context())
			}
			ctx := logger.Into(r.Context(), lg.With("trace_id", traceID))
			w.Header().Set(TraceHeader, traceID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
