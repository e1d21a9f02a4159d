package httpserver

import (
	"net/http"
	"time"
)

// New builds the registry's HTTP server. The request and response bodies are
// small JSON documents, so the read/write timeouts are tight; idle keep-alive
// connections are kept longer for polling monitors.
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
