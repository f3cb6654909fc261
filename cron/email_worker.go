package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"bookmycourt/config"
	"bookmycourt/models"
	"bookmycourt/services/notification"
	"bookmycourt/services/tasks"
	"bookmycourt/utils"
)

// InitEmailWorker runs the async email worker in the background. Tasks the
// handler fails are retried by asynq, so booking emails survive SMTP outages
// and process restarts.
func InitEmailWorker(mailer notification.Mailer) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingEmail, handleBookingEmailTask(mailer))

	go func() {
		logger.Info("starting email worker")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("email worker failed to start",
					zap.Int("attempt", attempt), zap.Error(err))
				if attempt == maxAttempts {
					logger.Fatal("email worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleBookingEmailTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.BookingEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid booking email payload", zap.Error(err))
			return err
		}

		var err error
		switch p.Kind {
		case models.EmailBookingConfirmed:
			err = mailer.SendBookingConfirmed(&p.User, &p.Booking, &p.Court)
		case models.EmailBookingCancelled:
			err = mailer.SendBookingCancelled(&p.User, &p.Booking, &p.Court)
		default:
			logger.Warn("unknown booking email kind", zap.String("kind", p.Kind))
			return nil
		}

		if err != nil {
			logger.Warn("booking email delivery failed, will retry",
				zap.String("bookingID", p.Booking.ID), zap.Error(err))
		}
		return err
	}
}
