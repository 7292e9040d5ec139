package cli

import (
	"context"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/client/reconciler"
)

// Reconcile re-fetches one entity as if a push notification had named it.
func (a *App) Reconcile(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: reconcile <family> <id>")
		return nil
	}
	n := reconciler.Notification{Family: models.Family(args[0]), ID: args[1]}
	if err := a.syncer.Handle(ctx, n); err != nil {
		return err
	}
	printlnFn("Reconciled", n.Family, n.ID)
	return nil
}

func (a *App) Sweep(ctx context.Context) error {
	if err := a.syncer.Sweep(ctx); err != nil {
		return err
	}
	printlnFn("Cache is up to date")
	return nil
}
