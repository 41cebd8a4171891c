package middleware

import (
	"net/http"
	"time"

	"infant-feeding-tracker/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger escribe una línea por request. /health se loguea en debug.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := map[string]any{
				"method":  r.Method,
				"path":    r.URL.Path,
				"status":  status,
				"bytes":   ww.BytesWritten(),
				"latency": time.Since(start).String(),
				"ip":      r.RemoteAddr,
			}
			if id := chimw.GetReqID(r.Context()); id != "" {
				fields["request_id"] = id
			}

			switch {
			case r.URL.Path == "/health":
				log.Debug("http_request", fields)
			case status >= http.StatusInternalServerError:
				log.Error("http_request", fields)
			default:
				log.Info("http_request", fields)
			}
		})
	}
}
