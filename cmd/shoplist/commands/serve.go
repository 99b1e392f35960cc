package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shoplist/shopping-api/internal/api"
	"github.com/shoplist/shopping-api/internal/api/handler"
	"github.com/shoplist/shopping-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, *envFile)
			if err != nil {
				return err
			}
			defer a.close()

			// Warm the connection so indexes exist before traffic; a failure
			// here is retried by the first request.
			if _, err := a.mongo.Database(ctx); err != nil {
				a.log.Warn().Err(err).Msg("mongo not reachable at startup")
			}

			ready := map[string]handler.Pinger{"mongodb": a.mongo}
			if a.redis != nil {
				rdb := a.redis
				ready["redis"] = handler.PingFunc(func(ctx context.Context) error {
					return rdb.Ping(ctx).Err()
				})
			}

			e := api.NewRouter(api.Deps{
				Authn:    a.authn,
				Users:    a.users,
				Products: a.products,
				Cart:     a.cart,
				Data:     a.data,
				Ready:    ready,
				Log:      logger.Component("http"),
			})

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("port", a.cfg.Port).Str("env", a.cfg.Env).Msg("server listening")
				if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				a.log.Info().Msg("shutdown signal received")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				a.log.Error().Err(err).Msg("graceful shutdown failed")
				return err
			}
			a.log.Info().Msg("server stopped")
			return nil
		},
	}
}
