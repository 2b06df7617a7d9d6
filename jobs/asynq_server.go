package jobs

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"

	jobmetrics "github.com/orcamenta/orcamenta/internal/jobs"
	"github.com/orcamenta/orcamenta/internal/platform/httpx"
)

// Worker wraps the Asynq server and optional scheduler.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// TaskHandler wires a task type to its handler during worker setup.
type TaskHandler struct {
	Type    string
	Handler asynq.HandlerFunc
}

// CronRegistration wires a cron expression to a prepared task.
type CronRegistration struct {
	Spec    string
	Task    *asynq.Task
	Options []asynq.Option
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts asynq.RedisClientOpt
	Logger    *slog.Logger
	Handlers  []TaskHandler
	Cron      []CronRegistration
	Metrics   *jobmetrics.Metrics
}

// NewWorker constructs a Worker instance.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	for _, h := range cfg.Handlers {
		if h.Type == "" || h.Handler == nil {
			continue
		}
		handler := h.Handler
		mux.HandleFunc(h.Type, func(ctx context.Context, t *asynq.Task) error {
			return cfg.Metrics.Track(t.Type()).End(handler(ctx, t))
		})
	}

	var scheduler *asynq.Scheduler
	if len(cfg.Cron) > 0 {
		scheduler = asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
		for _, entry := range cfg.Cron {
			if entry.Spec == "" || entry.Task == nil {
				continue
			}
			if _, err := scheduler.Register(entry.Spec, entry.Task, entry.Options...); err != nil {
				return nil, err
			}
		}
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return err
		}
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		if w.scheduler != nil {
			w.scheduler.Shutdown()
		}
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		if w.scheduler != nil {
			w.scheduler.Shutdown()
		}
		return err
	}
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) (*Client, error) {
	return &Client{client: asynq.NewClient(redisOpts)}, nil
}

// EnqueueBackupSnapshot requests an on-demand backup outside the cron cycle.
func (c *Client) EnqueueBackupSnapshot(ctx context.Context) (*asynq.TaskInfo, error) {
	task, err := NewBackupSnapshotTask(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}

// Handler exposes HTTP endpoints for queue observability and on-demand runs.
type Handler struct {
	inspector *asynq.Inspector
	enqueuer  *Client
	logger    *slog.Logger
}

// NewHandler constructs an HTTP handler for jobs endpoints.
func NewHandler(inspector *asynq.Inspector, enqueuer *Client, logger *slog.Logger) *Handler {
	return &Handler{inspector: inspector, enqueuer: enqueuer, logger: logger}
}

// MountRoutes attaches job routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/health", h.health)
	r.Post("/backup", h.triggerBackup)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	pending := 0
	queueName := QueueDefault
	if h.inspector != nil {
		info, err := h.inspector.GetQueueInfo(QueueDefault)
		if err != nil {
			h.logger.Warn("jobs health", slog.Any("error", err))
			httpx.Problem(w, http.StatusServiceUnavailable, "queue unavailable", err.Error())
			return
		}
		if info != nil {
			pending = info.Pending
			queueName = info.Queue
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"queue": queueName, "pending": pending})
}

// triggerBackup enqueues a snapshot outside the cron schedule.
func (h *Handler) triggerBackup(w http.ResponseWriter, r *http.Request) {
	if h.enqueuer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "queue unavailable", "job client not configured")
		return
	}
	info, err := h.enqueuer.EnqueueBackupSnapshot(r.Context())
	if err != nil {
		h.logger.Error("enqueue backup", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "queue unavailable", err.Error())
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{"task_id": info.ID, "type": info.Type})
}
