package dispatchhandlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ariadne-web/ariadne/dispatch"
)

// AccessLogConfig configures the access log middleware behaviour.
type AccessLogConfig struct {
	// Logger receives one entry per completed request. Required.
	Logger *zap.Logger

	// SkipPaths lists request paths that are served without logging,
	// typically health and metrics endpoints.
	SkipPaths []string
}

// AccessLogMiddleware returns a middleware that writes one structured log
// entry per request: method, path, matched endpoint, status, response bytes
// and duration.
func AccessLogMiddleware(cfg AccessLogConfig) dispatch.MiddlewareFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			rec := newStatusRecorder(w)
			start := time.Now()
			next.ServeHTTP(rec, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("endpoint", dispatch.Endpoint(r)),
				zap.Int("status", rec.status),
				zap.Int64("bytes", rec.bytes),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
