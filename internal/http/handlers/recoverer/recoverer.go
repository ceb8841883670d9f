package recoverer

import (
	"context"
	"dashboard/internal/core/domain/logging"
	"dashboard/internal/http/handlers/response"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
)

// New returns a middleware that turns a panic into the generic internal
// error response. The panic is logged and reported to Sentry.
func New(log logging.Logger) func(http.Handler) http.Handler {
	if log == nil {
		panic("Argument log must not be nil.")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				ctx := r.Context()
				log.Error(
					ctx,
					"Panic occurred while handling request.",
					logging.Entry("method", r.Method),
					logging.Entry("path", r.URL.Path),
					logging.Entry("panic", fmt.Sprint(rec)),
				)
				report(ctx, r, rec)
				response.RenderInternalError(rw)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

func report(ctx context.Context, r *http.Request, rec interface{}) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.Scope().SetRequest(r)
	hub.RecoverWithContext(ctx, rec)
}
