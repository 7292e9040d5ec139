package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/wghub/internal/client/app"
	"github.com/dmitrijs2005/wghub/internal/client/lifecycle"
	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/client/reconciler"
	"github.com/dmitrijs2005/wghub/internal/client/services"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

// Collection is the repository surface the shell uses for one family.
type Collection[T models.Entity] interface {
	Create(ctx context.Context, e T) (T, error)
	Update(ctx context.Context, e T) (T, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context, scopeID string) ([]T, error)
}

type Syncer interface {
	Handle(ctx context.Context, n reconciler.Notification) error
	Sweep(ctx context.Context) error
}

type ProgressReader interface {
	Progress(ctx context.Context) (lifecycle.Progress, error)
}

type LocalUser interface {
	LocalUserID(ctx context.Context) (string, error)
}

type App struct {
	auth      services.AuthService
	household services.HouseholdService
	tasks     Collection[models.Task]
	entries   Collection[models.CalendarEntry]
	absences  Collection[models.Absence]
	syncer    Syncer
	progress  ProgressReader
	local     LocalUser
	logger    logging.Logger

	reader *bufio.Reader
	out    io.Writer
	newID  func() string
	userID string
}

func NewApp(core *app.App) *App {
	return &App{
		auth:      core.Auth,
		household: core.Household,
		tasks:     core.Tasks,
		entries:   core.Entries,
		absences:  core.Absences,
		syncer:    core.Reconciler,
		progress:  core.Lifecycle,
		local:     core.Cache,
		logger:    core.Logger.With("module", "shell"),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		newID:     uuid.NewString,
	}
}

func (a *App) isLoggedIn() bool {
	return a.userID != ""
}

func (a *App) getStatus() string {
	if a.userID == "" {
		return "(signed out)"
	}
	return "(" + a.userID + ")"
}

// Run restores the signed-in user, if any, and serves the shell until the
// user exits or input ends. Closing the core is left to whoever built it.
func (a *App) Run(ctx context.Context) {
	if id, err := a.local.LocalUserID(ctx); err != nil {
		a.logger.Warn(ctx, "failed to read local user", "error", err)
	} else {
		a.userID = id
	}

	printlnFn("Welcome to wghub (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
