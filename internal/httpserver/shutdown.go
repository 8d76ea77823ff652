package httpserver

import (
	"context"
	"time"
)

// ShutdownTimeout controls how long to wait for in-flight streams during graceful shutdown.
var ShutdownTimeout = 30 * time.Second

// ShutdownWithTimeout stops the server, waiting at most ShutdownTimeout for open requests.
func ShutdownWithTimeout(s *Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
