package middleware

import (
	"net/http"

	"github.com/frahmantamala/asset-lifecycle/pkg/logger"

	"github.com/google/uuid"
)

// RequestID tags every request with a trace ID, honoring one supplied
// by the caller, and binds it to the context logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
