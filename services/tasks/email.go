package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookmycourt/models"
)

const TypeBookingEmail = "email:booking"

// NewBookingEmailTask builds a queued booking email task. Delivery is retried
// by the worker, so a crash between enqueue and SMTP dial does not lose the
// email.
func NewBookingEmailTask(payload models.BookingEmailPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingEmail, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}
