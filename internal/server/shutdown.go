package server

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// waitForShutdown returns a channel that is closed when ctx is canceled or an
// interrupt or terminate signal is received.
func waitForShutdown(ctx context.Context) <-chan struct{} {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		defer stop()
		<-ctx.Done()
		close(done)
	}()
	return done
}

// Shutdown stops the modules and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down server...")
	s.shutdownModules(ctx)
	return s.E.Shutdown(ctx)
}
