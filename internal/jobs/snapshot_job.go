package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultSnapshotSchedule takes a snapshot every minute.
const DefaultSnapshotSchedule = "0 * * * * *"

type snapshotter interface {
	Snapshot(ctx context.Context, takenAt time.Time) (ports.Snapshot, error)
}

// SnapshotJob copies the in-memory state to the snapshot store on a schedule.
type SnapshotJob struct {
	source   snapshotter
	store    ports.SnapshotStore
	clock    ports.Clock
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSnapshotJob(
	source snapshotter,
	store ports.SnapshotStore,
	clock ports.Clock,
	schedule string,
	logger *slog.Logger,
) *SnapshotJob {
	if schedule == "" {
		schedule = DefaultSnapshotSchedule
	}
	return &SnapshotJob{
		source:   source,
		store:    store,
		clock:    clock,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "snapshot_job"),
	}
}

// Run takes and saves one snapshot.
func (j *SnapshotJob) Run(ctx context.Context) error {
	snap, err := j.source.Snapshot(ctx, j.clock.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Snapshot failed", "error", err)
		return err
	}
	if err = j.store.Save(ctx, snap); err != nil {
		j.logger.ErrorContext(ctx, "Snapshot save failed", "error", err)
		return err
	}
	j.logger.DebugContext(ctx, "Snapshot saved",
		"drivers", len(snap.Drivers),
		"routes", len(snap.Routes),
		"pending", len(snap.Pending),
	)
	return nil
}

func (j *SnapshotJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot job started", "schedule", j.schedule)
	return nil
}

// Stop halts scheduling, waits for a running snapshot and then takes a final one.
func (j *SnapshotJob) Stop() {
	<-j.cron.Stop().Done()
	_ = j.Run(context.Background())
	j.logger.InfoContext(context.Background(), "Snapshot job stopped")
}
