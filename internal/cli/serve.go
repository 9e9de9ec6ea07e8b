package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brainshift/internal/router"
	"brainshift/internal/service"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if spec := a.cfg.Scheduler.StreakDecaySpec; spec != "" {
		sched := service.NewSchedulerService(a.loc, a.log)
		if _, err := sched.ScheduleStreakDecay(spec, a.streaks); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
		a.log.Info("streak decay sweep scheduled", "spec", spec, "timezone", a.loc.String())
	}

	r := router.SetupRouter(a.cfg, router.Deps{
		DB:        a.db,
		Sessions:  a.sessions,
		Streaks:   a.streaks,
		Audit:     a.audit,
		Cipher:    a.cipher,
		Loc:       a.loc,
		Log:       a.log,
		AccessLog: a.accessLog,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.Server.Address, a.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
