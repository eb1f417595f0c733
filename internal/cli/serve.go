package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/neophoriac/SimpleDraggable/internal/httpapi"
)

// newServeCmd creates the serve command, which runs the offset sync HTTP
// service over the configured store backend. The server shuts down
// gracefully when the command context is canceled.
func newServeCmd() *cobra.Command {
	var flags storeFlags
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the offset sync HTTP service",
		Long: `Run the offset sync HTTP service.

The service exposes persisted offsets over a small JSON API:

  GET    /v1/offsets/{id}   read a recorded offset
  PUT    /v1/offsets/{id}   record an offset
  DELETE /v1/offsets/{id}   clear a recorded offset
  GET    /healthz           liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, st, err := flags.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if addr == "" {
				addr = cfg.Serve.Addr
			}

			api := httpapi.New(st, logger)
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			done := make(chan error, 1)
			go func() {
				<-ctx.Done()
				shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				done <- srv.Shutdown(shutCtx)
			}()

			logger.Info("Serving offset sync API", "addr", addr, "backend", cfg.Store.Backend)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			if err := <-done; err != nil {
				return err
			}
			logger.Info("Server stopped")
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config, default :8470)")

	return cmd
}
