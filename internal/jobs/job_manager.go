package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	sweep    *PendingSweepJob
	snapshot *SnapshotJob
}

// NewJobManager takes the sweep job and, when snapshots are enabled, the
// snapshot job. Pass nil to run without snapshots.
func NewJobManager(sweep *PendingSweepJob, snapshot *SnapshotJob) *JobManager {
	return &JobManager{sweep: sweep, snapshot: snapshot}
}

func (jm *JobManager) jobs() []job {
	out := []job{jm.sweep}
	if jm.snapshot != nil {
		out = append(out, jm.snapshot)
	}
	return out
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	started := make([]job, 0, 2)
	for _, j := range jm.jobs() {
		if err := j.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, s := range started {
				s.Stop()
			}
			return fmt.Errorf("failed to start job: %w", err)
		}
		started = append(started, j)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, j := range jm.jobs() {
		j.Stop()
	}
}
