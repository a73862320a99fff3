package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwellhq/inkwell/queue"
)

type fakeSender struct {
	sent []string
	err  error
}

func (s *fakeSender) SendConfirmation(to, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, to)
	return nil
}

// fakeConsumer replays a fixed batch of jobs through the handler.
type fakeConsumer struct {
	jobs []queue.EmailJob
}

func (c *fakeConsumer) Consume(ctx context.Context, _, _ string, handler queue.EmailHandler) error {
	for _, job := range c.jobs {
		// Handler errors are swallowed, matching the queue's at-most-once
		// contract.
		_ = handler(ctx, job)
	}
	return ctx.Err()
}

func TestWorkerDeliversJobs(t *testing.T) {
	sender := &fakeSender{}
	consumer := &fakeConsumer{jobs: []queue.EmailJob{
		{Email: "alice@x.com", Token: "t1"},
		{Email: "bob@x.com", Token: "t2"},
	}}

	w := New(consumer, sender, "worker-1", nil)
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(sender.sent) != 2 || sender.sent[0] != "alice@x.com" || sender.sent[1] != "bob@x.com" {
		t.Errorf("unexpected deliveries: %v", sender.sent)
	}
}

func TestWorkerSenderFailureDoesNotStopLoop(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	consumer := &fakeConsumer{jobs: []queue.EmailJob{
		{Email: "alice@x.com", Token: "t1"},
		{Email: "bob@x.com", Token: "t2"},
	}}

	w := New(consumer, sender, "worker-1", nil)
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("run must not fail on sender errors: %v", err)
	}
}
