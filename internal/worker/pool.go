package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
)

const (
	TaskEmail = "email"

	queueBuffer = 64
)

// Task is the generic envelope for all async work.
type Task struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async tasks into an in-process buffered channel.
// The worker pool drains it; a full queue rejects the enqueue rather than
// blocking a request handler.
type Dispatcher struct {
	tasks chan Task
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{tasks: make(chan Task, queueBuffer)}
}

// EnqueueEmail queues an email task.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, TaskEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, taskType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	select {
	case d.tasks <- Task{Type: taskType, Payload: data}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.New("cola de tareas llena")
	}
}

// Handlers holds the task processors wired at the composition root.
type Handlers struct {
	Email *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines draining the dispatcher.
// Each goroutine blocks on the channel — zero CPU when idle — and exits
// when ctx is cancelled.
func StartWorkerPool(ctx context.Context, d *Dispatcher, h *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, d, h, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, d *Dispatcher, h *Handlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		case task := <-d.tasks:
			processTask(ctx, h, task)
		}
	}
}

func processTask(ctx context.Context, h *Handlers, task Task) {
	switch task.Type {
	case TaskEmail:
		h.Email.Process(ctx, task.Payload)
	default:
		log.Error().Str("type", task.Type).Msg("unknown task type dropped")
	}
}
