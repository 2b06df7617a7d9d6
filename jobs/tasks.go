package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/orcamenta/orcamenta/internal/backup"
	"github.com/orcamenta/orcamenta/internal/quotes"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskBackupSnapshot writes a full JSON snapshot to the backup directory.
	TaskBackupSnapshot = "backup:snapshot"
	// TaskDraftSweep removes drafts idle beyond the retention window.
	TaskDraftSweep = "drafts:sweep"
)

// BackupSnapshotPayload carries scheduling metadata.
type BackupSnapshotPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewBackupSnapshotTask constructs an Asynq task for a periodic backup.
func NewBackupSnapshotTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(BackupSnapshotPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBackupSnapshot, body, asynq.Queue(QueueDefault)), nil
}

// NewBackupSnapshotHandler processes TaskBackupSnapshot tasks.
func NewBackupSnapshotHandler(svc *backup.Service, dir string, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload BackupSnapshotPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		path, err := svc.WriteSnapshot(ctx, dir)
		if err != nil {
			return err
		}
		logger.Info("backup snapshot written", slog.String("path", path))
		return nil
	}
}

// DraftSweepPayload carries scheduling metadata.
type DraftSweepPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewDraftSweepTask constructs an Asynq task for the draft sweep.
func NewDraftSweepTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(DraftSweepPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDraftSweep, body, asynq.Queue(QueueDefault)), nil
}

// NewDraftSweepHandler removes the draft when it has been idle longer than
// the retention window. Redis TTL already bounds draft lifetime; the sweep
// keeps the slot tidy when the TTL is configured very long.
func NewDraftSweepHandler(store quotes.DraftStore, retention time.Duration, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		draft, err := store.Get(ctx)
		if errors.Is(err, quotes.ErrNoDraft) {
			return nil
		}
		if err != nil {
			return err
		}
		if time.Since(draft.UpdatedAt) < retention {
			return nil
		}
		if err := store.Delete(ctx); err != nil {
			return err
		}
		logger.Info("stale draft removed", slog.Time("updated_at", draft.UpdatedAt))
		return nil
	}
}
