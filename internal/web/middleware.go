package web

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoverMiddleware turns handler panics into the 500 error page.
func RecoverMiddleware(s *Server) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					slog.Error("panic serving request", "path", r.URL.Path, "error", err, "stack", string(debug.Stack()))
					s.internalError(w, r)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
