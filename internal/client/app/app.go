// Package app wires the client components: local cache, session, gateway,
// the per-family sync repositories, the lifecycle controller, the reconciler
// and the application services.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/wghub/internal/client/config"
	"github.com/dmitrijs2005/wghub/internal/client/gateway"
	"github.com/dmitrijs2005/wghub/internal/client/lifecycle"
	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/client/reconciler"
	"github.com/dmitrijs2005/wghub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wghub/internal/client/repositories/records"
	"github.com/dmitrijs2005/wghub/internal/client/services"
	"github.com/dmitrijs2005/wghub/internal/client/session"
	"github.com/dmitrijs2005/wghub/internal/client/syncrepo"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

type App struct {
	Config *config.Config
	Logger logging.Logger

	DB      *sql.DB
	Cache   *records.Cache
	Session *session.Context
	Gateway *gateway.GRPCGateway

	Entries     *syncrepo.Repository[models.CalendarEntry]
	Tasks       *syncrepo.Repository[models.Task]
	Absences    *syncrepo.Repository[models.Absence]
	Households  *syncrepo.Repository[models.Household]
	Users       *syncrepo.Repository[models.User]
	Memberships *syncrepo.Repository[models.Membership]

	Lifecycle  *lifecycle.Controller
	Reconciler *reconciler.Reconciler

	Auth      services.AuthService
	Household services.HouseholdService
}

// New opens the local database and dials the gateway named in cfg.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := records.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	sess := session.New(metadata.NewSQLiteRepository(db))
	gw, err := gateway.New(cfg.GatewayAddr, sess, cfg.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("gateway init error: %w", err)
	}

	return assemble(cfg, db, sess, gw, logger), nil
}

// NewWithConn is New over an already opened database and client connection.
func NewWithConn(cfg *config.Config, db *sql.DB, conn grpc.ClientConnInterface, logger logging.Logger) *App {
	sess := session.New(metadata.NewSQLiteRepository(db))
	gw := gateway.NewWithConn(conn, sess, cfg.RequestTimeout, logger)
	return assemble(cfg, db, sess, gw, logger)
}

func assemble(cfg *config.Config, db *sql.DB, sess *session.Context, gw *gateway.GRPCGateway, logger logging.Logger) *App {
	hub := records.NewHub()
	cache := records.NewCache(db, hub)

	userStore := records.NewStore[models.User](db, models.FamilyUser, hub, logger)

	a := &App{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Cache:   cache,
		Session: sess,
		Gateway: gw,

		Entries:     newRepo[models.CalendarEntry](models.FamilyCalendarEntry, db, gw, hub, cache, logger),
		Tasks:       newRepo[models.Task](models.FamilyTask, db, gw, hub, cache, logger),
		Absences:    newRepo[models.Absence](models.FamilyAbsence, db, gw, hub, cache, logger),
		Households:  newRepo[models.Household](models.FamilyHousehold, db, gw, hub, cache, logger),
		Memberships: newRepo[models.Membership](models.FamilyMembership, db, gw, hub, cache, logger),
		Users: syncrepo.New[models.User](models.FamilyUser,
			gateway.NewEntityClient[models.User](gw, models.FamilyUser), userStore, cache, logger),
	}

	a.Lifecycle = lifecycle.NewController(gw, sess, cache, userStore,
		lifecycle.NewMetadataCursorStore(metadata.NewSQLiteRepository(db)), logger)

	a.Reconciler = reconciler.New(logger)
	a.Reconciler.Register(models.FamilyCalendarEntry, a.Entries)
	a.Reconciler.Register(models.FamilyTask, a.Tasks)
	a.Reconciler.Register(models.FamilyAbsence, a.Absences)
	a.Reconciler.Register(models.FamilyHousehold, a.Households)
	a.Reconciler.Register(models.FamilyUser, a.Users)
	a.Reconciler.Register(models.FamilyMembership, a.Memberships)

	a.Household = services.NewHouseholdService(gw, a.Users, a.Households, a.Memberships, cache, cache, logger)
	a.Auth = services.NewAuthService(gw, sess, cache, a.Lifecycle, a.Household, cfg.PushToken, logger)

	return a
}

func newRepo[T models.Entity](f models.Family, db *sql.DB, gw *gateway.GRPCGateway, hub *records.Hub, users syncrepo.UserResolver, logger logging.Logger) *syncrepo.Repository[T] {
	return syncrepo.New[T](f,
		gateway.NewEntityClient[T](gw, f),
		records.NewStore[T](db, f, hub, logger),
		users, logger)
}

// Close releases the gateway connection and the database.
func (a *App) Close() error {
	return errors.Join(a.Gateway.Close(), a.DB.Close())
}
