package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/cli/config"
	controller "github.com/hashtags-tool/hashdash/pkg/controller/http"
	"github.com/hashtags-tool/hashdash/pkg/repository"
	"github.com/hashtags-tool/hashdash/pkg/service/chart"
	"github.com/hashtags-tool/hashdash/pkg/usecase"
	"github.com/hashtags-tool/hashdash/pkg/utils/apperr"
	"github.com/hashtags-tool/hashdash/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		backendCfg   config.Backend
		dashboardCfg config.Dashboard
	)

	flags := joinFlags(
		serverCfg.Flags(),
		backendCfg.Flags(),
		dashboardCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting hashdash server",
				slog.Any("server", serverCfg),
				slog.Any("backend", backendCfg),
				slog.Any("dashboard", dashboardCfg),
			)

			layout, err := dashboardCfg.Configure()
			if err != nil {
				return err
			}

			statsClient, err := backendCfg.Configure()
			if err != nil {
				return err
			}

			repo := repository.NewMemory()
			defer repo.Close()

			dashboardUC := usecase.NewDashboardUseCase(
				statsClient,
				chart.New(layout.Style),
				repo,
				layout,
				usecase.WithSessionTTL(dashboardCfg.SessionTTL),
			)

			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				dashboardUC,
				controller.WithBaseURL(serverCfg.BaseURL),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			sweepCtx, stopSweep := context.WithCancel(ctx)
			defer stopSweep()
			if dashboardCfg.SessionTTL > 0 {
				async.Dispatch(sweepCtx, "session-sweep", func(ctx context.Context) error {
					runSweep(ctx, sweepCtx.Done(), dashboardUC, dashboardCfg.SweepInterval)
					return nil
				})
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}
			stopSweep()

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// runSweep drops idle sessions every interval until stop is closed
func runSweep(ctx context.Context, stop <-chan struct{}, uc *usecase.DashboardUseCase, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := uc.Sweep(ctx); err != nil {
				apperr.Handle(ctx, err)
			}
		}
	}
}
