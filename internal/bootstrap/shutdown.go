package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// GracefulShutdown stops the ops server and then the backends.
func GracefulShutdown(srv *http.Server, app *App) {
	app.log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.log.WithError(err).Warn("server shutdown error")
	}

	app.Close()
}
