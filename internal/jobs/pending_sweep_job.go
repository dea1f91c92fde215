package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep every ten seconds.
const DefaultSweepSchedule = "*/10 * * * * *"

type pendingItemsAssigner interface {
	Handle(ctx context.Context, cmd commands.AssignPendingItemsCommand) ([]commands.Assignment, error)
}

// PendingSweepJob periodically offers queued items to routes and drivers
// again. Event-driven rescans already cover driver registration, submission
// and driver release; the sweep catches anything those missed.
type PendingSweepJob struct {
	handler  pendingItemsAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPendingSweepJob(handler pendingItemsAssigner, schedule string, logger *slog.Logger) *PendingSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &PendingSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "pending_sweep_job"),
	}
}

// Run performs one sweep.
func (j *PendingSweepJob) Run(ctx context.Context) {
	assignments, err := j.handler.Handle(ctx, commands.NewAssignPendingItemsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending sweep failed", "error", err)
		return
	}
	if len(assignments) > 0 {
		j.logger.InfoContext(ctx, "Pending sweep placed items", "count", len(assignments))
	}
}

func (j *PendingSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending sweep job started", "schedule", j.schedule)
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (j *PendingSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending sweep job stopped")
}
