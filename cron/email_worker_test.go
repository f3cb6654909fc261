package cron

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmycourt/models"
	"bookmycourt/services/tasks"
)

type fakeMailer struct {
	confirmed []string
	cancelled []string
	err       error
}

func (f *fakeMailer) SendBookingConfirmed(user *models.User, booking *models.Booking, court *models.Court) error {
	f.confirmed = append(f.confirmed, booking.ID)
	return f.err
}

func (f *fakeMailer) SendBookingCancelled(user *models.User, booking *models.Booking, court *models.Court) error {
	f.cancelled = append(f.cancelled, booking.ID)
	return f.err
}

func emailTask(t *testing.T, kind string) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewBookingEmailTask(models.BookingEmailPayload{
		Kind:    kind,
		User:    models.User{ID: "u1", Email: "sam@example.com"},
		Booking: models.Booking{ID: "b1"},
		Court:   models.Court{ID: "c1", Name: "Center Court"},
	})
	require.NoError(t, err)
	return task
}

func TestHandleBookingEmailTaskDispatchesByKind(t *testing.T) {
	mailer := &fakeMailer{}
	handler := handleBookingEmailTask(mailer)

	require.NoError(t, handler(context.Background(), emailTask(t, models.EmailBookingConfirmed)))
	require.NoError(t, handler(context.Background(), emailTask(t, models.EmailBookingCancelled)))

	assert.Equal(t, []string{"b1"}, mailer.confirmed)
	assert.Equal(t, []string{"b1"}, mailer.cancelled)
}

func TestHandleBookingEmailTaskReturnsMailerErrorForRetry(t *testing.T) {
	mailer := &fakeMailer{err: assert.AnError}
	handler := handleBookingEmailTask(mailer)

	err := handler(context.Background(), emailTask(t, models.EmailBookingConfirmed))
	assert.Error(t, err)
}

func TestHandleBookingEmailTaskSkipsUnknownKind(t *testing.T) {
	mailer := &fakeMailer{}
	handler := handleBookingEmailTask(mailer)

	assert.NoError(t, handler(context.Background(), emailTask(t, "newsletter")))
	assert.Empty(t, mailer.confirmed)
	assert.Empty(t, mailer.cancelled)
}

func TestHandleBookingEmailTaskRejectsBadPayload(t *testing.T) {
	handler := handleBookingEmailTask(&fakeMailer{})
	task := asynq.NewTask(tasks.TypeBookingEmail, []byte("{not json"))

	assert.Error(t, handler(context.Background(), task))
}
