package scheduler

import (
	"context"
	"fmt"

	bookingservice "booking_portal_backend/internal/booking/service"
	"booking_portal_backend/platform/apperr"
	"booking_portal_backend/platform/config"
	"booking_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker processes background tasks: it sweeps booking draft sessions whose
// TTL has elapsed and records what became of them.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	store  *bookingservice.Store
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, store *bookingservice.Store, log *logger.Logger) (*Worker, error) {
	if cfg.GetRedisURL() == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		store:  store,
		log:    log,
	}

	mux.HandleFunc(TaskDraftExpiry, w.handleDraftExpiry)

	return w, nil
}

// handleDraftExpiry runs one session TTL after the draft was started. A
// missing session means the draft was submitted, abandoned, or has expired
// on its own; a session that is still present had its TTL re-armed by later
// edits and is left alone.
func (w *Worker) handleDraftExpiry(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDraftExpiryPayload(task)
	if err != nil {
		return err
	}

	draftID, err := uuid.Parse(payload.DraftID)
	if err != nil {
		return err
	}

	session, err := w.store.Get(ctx, draftID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			w.log.DraftEvent("expired", draftID.String(), 0)
			return nil
		}
		return err
	}

	w.log.DraftEvent("still_active", draftID.String(), int(session.Step))
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
