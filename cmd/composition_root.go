package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/clock"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/snapshotrepo"
	"dispatch/internal/adapters/out/ses"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CompositionRoot owns every long-lived component and builds handlers on demand.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	store      *memory.Store
	uowFactory *memory.UnitOfWorkFactory
	clock      ports.Clock
	notifier   *notify.AsyncNotifier

	db        *gorm.DB
	snapshots *snapshotrepo.GormSnapshotRepository
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := memory.NewStore()
	root := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		uowFactory: memory.NewUnitOfWorkFactory(store),
		clock:      clock.System{},
	}

	delivery, err := root.newDeliveryNotifier(ctx)
	if err != nil {
		return nil, err
	}
	root.notifier = notify.NewAsyncNotifier(delivery, cfg.NotifyTimeout, cfg.NotifyMaxInFlight, logger)

	if cfg.SnapshotEnabled {
		if root.db, err = openSnapshotDB(cfg); err != nil {
			return nil, err
		}
		root.snapshots = snapshotrepo.NewGormSnapshotRepository(root.db)
		if err = root.snapshots.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate snapshot tables: %w", err)
		}
	}

	return root, nil
}

func (c *CompositionRoot) newDeliveryNotifier(ctx context.Context) (ports.Notifier, error) {
	if c.cfg.Notifier == NotifierSES {
		return ses.NewNotifierFromEnvironment(ctx, c.cfg.SESFromAddress, c.logger)
	}
	return notify.NewLogNotifier(c.logger), nil
}

func openSnapshotDB(cfg Config) (*gorm.DB, error) {
	if cfg.SnapshotDriver == SnapshotDriverSQLite {
		db, err := gorm.Open(sqlite.Open(cfg.SnapshotSQLitePath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SnapshotSQLitePath, err)
		}
		return db, nil
	}
	return postgres.Open(cfg.DB)
}

// RestoreSnapshot loads the stored snapshot into the empty store. It does
// nothing when snapshots are disabled or none was saved yet.
func (c *CompositionRoot) RestoreSnapshot(ctx context.Context) error {
	if c.snapshots == nil {
		return nil
	}

	snap, err := c.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap.IsEmpty() {
		c.logger.InfoContext(ctx, "No snapshot to restore")
		return nil
	}
	if err = c.store.Restore(ctx, snap); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	c.logger.InfoContext(ctx, "Snapshot restored",
		"taken_at", snap.TakenAt,
		"drivers", len(snap.Drivers),
		"routes", len(snap.Routes),
		"pending", len(snap.Pending),
	)
	return nil
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	return commands.NewRegisterDriverCommandHandler(c.uowFactory, c.clock)
}

func (c *CompositionRoot) CreateDeactivateDriverCommandHandler() commands.DeactivateDriverCommandHandler {
	return commands.NewDeactivateDriverCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateSubmitItemCommandHandler() commands.SubmitItemCommandHandler {
	return commands.NewSubmitItemCommandHandler(c.uowFactory, c.clock)
}

func (c *CompositionRoot) CreateAssignPendingItemsCommandHandler() commands.AssignPendingItemsCommandHandler {
	return commands.NewAssignPendingItemsCommandHandler(c.uowFactory, c.clock)
}

func (c *CompositionRoot) CreateRemoveItemCommandHandler() commands.RemoveItemCommandHandler {
	return commands.NewRemoveItemCommandHandler(c.uowFactory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSetRouteStatusCommandHandler() commands.SetRouteStatusCommandHandler {
	return commands.NewSetRouteStatusCommandHandler(c.uowFactory, c.clock)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterDriver:      c.CreateRegisterDriverCommandHandler(),
		DeactivateDriver:    c.CreateDeactivateDriverCommandHandler(),
		SubmitItem:          c.CreateSubmitItemCommandHandler(),
		RemoveItem:          c.CreateRemoveItemCommandHandler(),
		SetRouteStatus:      c.CreateSetRouteStatusCommandHandler(),
		GetRoute:            queries.NewGetRouteQueryHandler(c.store),
		GetDriverRoutes:     queries.NewGetDriverRoutesQueryHandler(c.store),
		FindEligibleDrivers: queries.NewFindEligibleDriversQueryHandler(c.store),
		GetPendingItems:     queries.NewGetPendingItemsQueryHandler(c.store),
		GetStats:            queries.NewGetStatsQueryHandler(c.store),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := jobs.NewPendingSweepJob(c.CreateAssignPendingItemsCommandHandler(), c.cfg.SweepSchedule, c.logger)
	if c.snapshots == nil {
		return jobs.NewJobManager(sweep, nil)
	}
	snapshot := jobs.NewSnapshotJob(c.store, c.snapshots, c.clock, c.cfg.SnapshotSchedule, c.logger)
	return jobs.NewJobManager(sweep, snapshot)
}

// Close waits for in-flight notifications and closes the database.
func (c *CompositionRoot) Close() error {
	c.notifier.Wait()
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
