// Package reconciler applies out-of-band change notifications to the local
// cache by re-fetching the changed entity from the backend.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

var ErrUnknownFamily = errors.New("unknown entity family")

// Notification tells that the entity ID of Family changed remotely.
type Notification struct {
	Family models.Family `json:"family"`
	ID     string        `json:"id"`
}

// Target is the repository of one family.
type Target interface {
	FetchAndReconcile(ctx context.Context, id string) error
	CachedIDs(ctx context.Context) ([]string, error)
}

type Reconciler struct {
	mu      sync.RWMutex
	targets map[models.Family]Target
	logger  logging.Logger
}

func New(logger logging.Logger) *Reconciler {
	return &Reconciler{
		targets: make(map[models.Family]Target),
		logger:  logger.With("module", "reconciler"),
	}
}

// Register routes notifications of family f to t.
func (r *Reconciler) Register(f models.Family, t Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[f] = t
}

func (r *Reconciler) target(f models.Family) (Target, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.targets[f]
	return t, ok
}

// Handle reconciles the entity named by n.
func (r *Reconciler) Handle(ctx context.Context, n Notification) error {
	t, ok := r.target(n.Family)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFamily, n.Family)
	}
	if err := t.FetchAndReconcile(ctx, n.ID); err != nil {
		r.logger.Warn(ctx, "reconcile failed", "family", n.Family, "id", n.ID, "error", err)
		return err
	}
	r.logger.Debug(ctx, "reconciled", "family", n.Family, "id", n.ID)
	return nil
}

// Sweep reconciles every cached entity of every registered family. It keeps
// going after a failure and returns the first one.
func (r *Reconciler) Sweep(ctx context.Context) error {
	var first error
	total := 0

	for _, f := range models.Families {
		t, ok := r.target(f)
		if !ok {
			continue
		}

		ids, err := t.CachedIDs(ctx)
		if err != nil {
			r.logger.Warn(ctx, "listing cached ids failed", "family", f, "error", err)
			if first == nil {
				first = err
			}
			continue
		}

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			total++
			if err := t.FetchAndReconcile(ctx, id); err != nil {
				r.logger.Warn(ctx, "sweep reconcile failed", "family", f, "id", id, "error", err)
				if first == nil {
					first = err
				}
			}
		}
	}

	r.logger.Info(ctx, "sweep finished", "entities", total, "failed", first != nil)
	return first
}
