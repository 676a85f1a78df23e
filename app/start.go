package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// Run serves HTTP, the event router and the modules until ctx is done, then shuts the
// HTTP server down gracefully.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Router.Run(ctx)
	})

	var wg sync.WaitGroup
	wg.Add(1)
	g.Go(func() error {
		return app.Modules.Scorecard.Run(ctx, &wg)
	})

	g.Go(func() error {
		return app.Observability.ServeMetrics(ctx)
	})

	srv := &http.Server{
		Addr:              app.Config.HTTP.Addr,
		Handler:           app.HTTPRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		app.Logger.InfoContext(ctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		app.Logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	wg.Wait()
	return err
}
