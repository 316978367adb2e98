// Package middleware provides gorilla/mux-compatible HTTP middleware
// shared across API handlers.
package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Recovery returns middleware that recovers from a panic in the wrapped
// handler, logs it, and responds with a generic 500 instead of letting
// the connection die.
func Recovery(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithFields(logrus.Fields{
						"path":  r.URL.Path,
						"panic": rec,
					}).Error("recovered from panic in HTTP handler")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"detail":"Internal server error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
