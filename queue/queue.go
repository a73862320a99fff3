// Package queue hands confirmation-email work off to an out-of-process
// worker through a durable broker, decoupling request latency from SMTP
// delivery.
package queue

import "context"

// KindConfirmationEmail is the only job kind published today.
const KindConfirmationEmail = "send_confirmation_email"

// EmailJob is the payload for a confirmation email: who to mail and the
// freshly issued access token to include. Jobs are transient; they exist
// only on the broker between enqueue and worker pickup.
type EmailJob struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Dispatcher places jobs on the broker for asynchronous pickup. Enqueue
// returns as soon as the broker accepts the message; it never waits for
// the worker.
type Dispatcher interface {
	EnqueueEmail(ctx context.Context, job EmailJob) error
}

// EmailHandler processes a single job on the worker side.
type EmailHandler func(ctx context.Context, job EmailJob) error
