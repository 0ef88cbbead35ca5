// Package httpserver builds the process's http.Server. Handler-level timeouts
// come from the router middleware; only connection-level limits live here.
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server bound to addr with conservative connection timeouts.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
