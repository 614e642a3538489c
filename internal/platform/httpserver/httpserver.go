package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server for the gate API. Requests are small JSON
// snapshots, so read and write deadlines stay short.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
