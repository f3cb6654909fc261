package notification

import (
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"bookmycourt/models"
	"bookmycourt/services/realtime"
	"bookmycourt/services/tasks"
	"bookmycourt/utils"
)

// TaskEnqueuer queues background tasks. Satisfied by asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultNotificationService pushes events to the realtime hub and queues
// booking emails for the background worker.
type DefaultNotificationService struct {
	Hub   *realtime.Hub
	Queue TaskEnqueuer
}

func (s *DefaultNotificationService) BookingConfirmed(booking *models.Booking, court *models.Court, user *models.User) {
	s.Hub.Broadcast(&models.Notification{
		Type:      models.NotificationBookingConfirmed,
		Message:   fmt.Sprintf("%s booked on %s, %s-%s", court.Name, booking.Date, booking.StartTime, booking.EndTime),
		CourtID:   court.ID,
		BookingID: booking.ID,
	})
	s.enqueueEmail(models.EmailBookingConfirmed, booking, court, user)
}

func (s *DefaultNotificationService) BookingCancelled(booking *models.Booking, court *models.Court, user *models.User) {
	s.Hub.Broadcast(&models.Notification{
		Type:      models.NotificationBookingCancelled,
		Message:   fmt.Sprintf("%s freed on %s, %s-%s", court.Name, booking.Date, booking.StartTime, booking.EndTime),
		CourtID:   court.ID,
		BookingID: booking.ID,
	})
	s.enqueueEmail(models.EmailBookingCancelled, booking, court, user)
}

func (s *DefaultNotificationService) Broadcast(title, message string) {
	s.Hub.Broadcast(&models.Notification{
		Type:    models.NotificationBroadcast,
		Title:   title,
		Message: message,
	})
}

// enqueueEmail hands the email to the task queue. Delivery and retries happen
// in the worker; only the enqueue itself can fail here.
func (s *DefaultNotificationService) enqueueEmail(kind string, booking *models.Booking, court *models.Court, user *models.User) {
	if s.Queue == nil || user == nil || user.Email == "" {
		return
	}

	task, opts, err := tasks.NewBookingEmailTask(models.BookingEmailPayload{
		Kind:    kind,
		User:    *user,
		Booking: *booking,
		Court:   *court,
	})
	if err != nil {
		utils.GetLogger().Error("failed to build booking email task",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}

	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("failed to enqueue booking email",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
