package httpserver

import "errors"

var (
	// ErrStart wraps failures to start or run the HTTP server.
	ErrStart = errors.New("http server failed to start")

	// ErrShutdown wraps failures during graceful shutdown.
	ErrShutdown = errors.New("http server failed to shut down")
)
