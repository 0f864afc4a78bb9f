package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// workerConcurrency bounds simultaneous email deliveries. The launch
// broadcast fires every pending task at once; the SMTP relay cannot take an
// unbounded burst.
const workerConcurrency = 10

// Worker consumes the email queues.
type Worker interface {
	RegisterHandler(taskType string, handler asynq.Handler)
	Run() error
	Shutdown()
}

type worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *slog.Logger
}

var _ Worker = (*worker)(nil)

// NewWorker constructs a Worker consuming the given queues with their
// relative priorities.
func NewWorker(redisOpt asynq.RedisConnOpt, queues map[string]int, log *slog.Logger) Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Queues:         queues,
		Concurrency:    workerConcurrency,
		RetryDelayFunc: asynq.DefaultRetryDelayFunc,
	})

	return &worker{
		server: server,
		mux:    asynq.NewServeMux(),
		log:    log,
	}
}

// RegisterHandler wires a task type to its handler.
func (w *worker) RegisterHandler(taskType string, handler asynq.Handler) {
	w.mux.Handle(taskType, handler)
}

// Run starts processing tasks and blocks until Shutdown.
func (w *worker) Run() error {
	if w.log != nil {
		w.log.InfoContext(context.Background(), "email worker: starting processing loop")
	}

	return w.server.Run(w.mux)
}

// Shutdown stops the worker, waiting for in-flight deliveries.
func (w *worker) Shutdown() {
	if w.log != nil {
		w.log.InfoContext(context.Background(), "email worker: shutting down")
	}

	w.server.Shutdown()
}
