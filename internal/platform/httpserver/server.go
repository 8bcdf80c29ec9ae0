// Package httpserver wraps the standard http.Server with the timeouts the
// service runs with in every environment.
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server configured with conservative timeouts. Callers own
// the ListenAndServe / Shutdown lifecycle.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
