// Package worker runs the email delivery loop of the worker process. It
// consumes confirmation-email jobs from the queue and hands them to the
// mailer; delivery failures are logged and the job is dropped, never
// retried.
package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/queue"
)

// ConsumerGroup is the single consumer group the worker pool reads as.
const ConsumerGroup = "inkwell-workers"

// Sender delivers one confirmation email.
type Sender interface {
	SendConfirmation(to, accessToken string) error
}

// Consumer feeds jobs to a handler until the context is cancelled.
type Consumer interface {
	Consume(ctx context.Context, group, consumer string, handler queue.EmailHandler) error
}

type Worker struct {
	consumer Consumer
	sender   Sender
	name     string
	log      *zap.Logger
}

func New(consumer Consumer, sender Sender, name string, log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		consumer: consumer,
		sender:   sender,
		name:     name,
		log:      log,
	}
}

// Run blocks until ctx is cancelled or the consumer fails to start.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("email worker starting", zap.String("consumer", w.name))
	return w.consumer.Consume(ctx, ConsumerGroup, w.name, w.HandleEmailJob)
}

// HandleEmailJob delivers one confirmation email. The returned error is
// logged by the consumer; the job is acked either way.
func (w *Worker) HandleEmailJob(_ context.Context, job queue.EmailJob) error {
	if err := w.sender.SendConfirmation(job.Email, job.Token); err != nil {
		return err
	}
	w.log.Info("confirmation email sent", zap.String("email", job.Email))
	return nil
}
