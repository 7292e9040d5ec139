package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/wghub/internal/client/reconciler"
)

const (
	shutdownTimeout = 5 * time.Second
	sweepTimeout    = 10 * time.Minute
)

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// RunDaemon serves relayed push notifications on cfg.PushListenAddr and runs
// the reconciliation sweep on cfg.SweepSchedule until ctx is cancelled or a
// termination signal arrives. One sweep runs at startup.
func (a *App) RunDaemon(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	a.initSignalHandler(cancelFunc)

	scheduler, err := reconciler.NewScheduler(a.Config.SweepSchedule, a.Reconciler, sweepTimeout, a.Logger)
	if err != nil {
		return err
	}

	e := reconciler.NewRouter(reconciler.NewHTTPHandler(a.Reconciler, a.Logger))

	a.Logger.Info(ctx, "Starting daemon...", "listen", a.Config.PushListenAddr, "schedule", a.Config.SweepSchedule)

	if err := a.Reconciler.Sweep(ctx); err != nil {
		a.Logger.Warn(ctx, "startup sweep failed", "error", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	errs := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := e.Start(a.Config.PushListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error(shutdownCtx, "push endpoint shutdown failed", "error", err)
	}
	wg.Wait()

	a.Logger.Info(shutdownCtx, "daemon stopped")

	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}
