package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/stagetrack/internal/api"
	"github.com/alexanderramin/stagetrack/internal/app"
	"github.com/alexanderramin/stagetrack/internal/config"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return st.withApp(ctx, func(a *app.App) error {
				return st.serve(ctx, a)
			})
		},
	}
	cmd.Flags().String(config.FlagAddr, "", "listen address (default :3000)")
	cmd.Flags().String(config.FlagStaticDir, "", "directory served on / (default ./public)")
	cmd.Flags().String(config.FlagCORSOrigin, "", "Access-Control-Allow-Origin value (default *)")
	return cmd
}

// serve blocks until ctx is cancelled or the listener fails, then drains
// in-flight requests.
func (st *state) serve(ctx context.Context, a *app.App) error {
	handler := api.New(api.Services{
		Stages:   a.Stages,
		Tasks:    a.Tasks,
		Stats:    a.Stats,
		Transfer: a.Transfer,
	}, api.Options{
		StaticDir:  st.cfg.StaticDir,
		CORSOrigin: st.cfg.CORSOrigin,
		Logger:     st.logger,
	})
	srv := &http.Server{
		Addr:              st.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	st.logger.Info("listening", "addr", st.cfg.Addr, "dialect", a.DB.Dialect())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	st.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	<-errCh
	return err
}
