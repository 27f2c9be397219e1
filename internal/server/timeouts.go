// internal/server/timeouts.go
//
// http.Server construction with hardened timeouts.
//
// Context
// -------
// The zero-value http.Server never times anything out, so a client that
// trickles headers or never drains a response can pin a connection
// forever.  New fixes the three limits in one place: 10 s to read the
// request (slow-loris), 15 s to write the response, 60 s before an idle
// keep-alive is closed.  The public API serves small JSON payloads, so
// these are generous.

package server

import (
	"net/http"
	"time"
)

// New returns an *http.Server for addr with the timeout policy above.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		// TLSConfig is left for the caller (e.g., autocert).
	}
}
