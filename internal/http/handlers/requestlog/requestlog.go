package requestlog

import (
	"dashboard/internal/core/domain/logging"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// New attaches the chi request ID to the request context as a log entry
// and logs every completed request. It must run after middleware.RequestID.
func New(log logging.Logger) func(http.Handler) http.Handler {
	if log == nil {
		panic("Argument log must not be nil.")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if requestID := middleware.GetReqID(ctx); requestID != "" {
				ctx = logging.WithEntries(ctx, logging.Entry("requestID", requestID))
			}

			ww := middleware.NewWrapResponseWriter(rw, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log.Info(
				ctx,
				"Request handled.",
				logging.Entry("method", r.Method),
				logging.Entry("path", r.URL.Path),
				logging.Entry("status", status),
				logging.Entry("duration", time.Since(started)),
			)
		})
	}
}
