package notification

import (
	"context"

	"pago_backend/platform/config"
	"pago_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker consumes delivery tasks from the queue. asynq retries tasks
// that return an error, capped by the task's MaxRetry.
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	service *Service
	log     *logger.Logger
}

// NewWorker builds the queue worker.
func NewWorker(cfg config.SchedulerConfig, service *Service, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}
	concurrency := cfg.GetWorkerConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	w := &Worker{
		server:  server,
		mux:     asynq.NewServeMux(),
		service: service,
		log:     log,
	}
	w.mux.HandleFunc(TaskDeliver, w.handleDeliver)
	return w, nil
}

func (w *Worker) handleDeliver(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDeliverPayload(task)
	if err != nil {
		return err
	}
	outboxID, err := uuid.Parse(payload.OutboxID)
	if err != nil {
		return err
	}
	return w.service.Deliver(ctx, outboxID)
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("notification worker stopped", "error", err)
	}
}
