package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultStream = "inkwell:jobs:email"
	readBlock     = 5 * time.Second
	readCount     = 10
)

// RedisQueue implements Dispatcher on top of a Redis stream. The stream is
// durable and consumed by a single consumer group; the shared client
// tolerates concurrent publishers.
type RedisQueue struct {
	client *redis.Client
	stream string
	log    *zap.Logger
}

// NewRedisQueue creates a queue over the given stream name.
func NewRedisQueue(client *redis.Client, stream string, log *zap.Logger) *RedisQueue {
	if stream == "" {
		stream = defaultStream
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisQueue{
		client: client,
		stream: stream,
		log:    log,
	}
}

// EnqueueEmail publishes the job and returns immediately.
func (q *RedisQueue) EnqueueEmail(ctx context.Context, job EmailJob) error {
	jobID := uuid.NewString()
	err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{
			"job_id": jobID,
			"kind":   KindConfirmationEmail,
			"email":  job.Email,
			"token":  job.Token,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("queue: enqueue failed: %w", err)
	}

	q.log.Debug("email job enqueued", zap.String("job_id", jobID))
	return nil
}

// Consume reads jobs for the given consumer group and feeds them to
// handler until ctx is cancelled. Processing is at-most-once: every
// message is acked whether or not the handler succeeded, and handler
// failures are logged, never retried.
func (q *RedisQueue) Consume(ctx context.Context, group, consumer string, handler EmailHandler) error {
	err := q.client.XGroupCreateMkStream(ctx, q.stream, group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("queue: create consumer group failed: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: consumer,
			Streams:  []string{q.stream, ">"},
			Count:    readCount,
			Block:    readBlock,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			q.log.Warn("queue read failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				q.handleMessage(ctx, group, msg, handler)
			}
		}
	}
}

func (q *RedisQueue) handleMessage(ctx context.Context, group string, msg redis.XMessage, handler EmailHandler) {
	// Ack no matter what: delivery is best-effort, a failed job is not
	// re-queued.
	defer func() {
		if err := q.client.XAck(ctx, q.stream, group, msg.ID).Err(); err != nil {
			q.log.Warn("queue ack failed", zap.String("id", msg.ID), zap.Error(err))
		}
	}()

	job, err := decodeEmailJob(msg.Values)
	if err != nil {
		q.log.Error("queue message malformed", zap.String("id", msg.ID), zap.Error(err))
		return
	}

	if err := handler(ctx, job); err != nil {
		q.log.Error("email job failed", zap.String("id", msg.ID), zap.String("email", job.Email), zap.Error(err))
	}
}

func decodeEmailJob(values map[string]any) (EmailJob, error) {
	kind, _ := values["kind"].(string)
	if kind != KindConfirmationEmail {
		return EmailJob{}, fmt.Errorf("unknown job kind %q", kind)
	}

	email, _ := values["email"].(string)
	token, _ := values["token"].(string)
	if email == "" {
		return EmailJob{}, fmt.Errorf("job missing recipient email")
	}

	return EmailJob{Email: email, Token: token}, nil
}
