package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	bookingRepo "bookmycourt/database/repository/booking"
	"bookmycourt/utils"
)

// StartBookingSweeper schedules a periodic job that marks confirmed bookings
// whose interval has fully passed as completed. Returns the scheduler so the
// caller can stop it on shutdown.
func StartBookingSweeper(repo bookingRepo.BookingRepository) *cron.Cron {
	logger := utils.GetLogger()
	c := cron.New()

	_, err := c.AddFunc("*/15 * * * *", func() {
		now := time.Now()
		today := now.Format("2006-01-02")
		nowMinutes := now.Hour()*60 + now.Minute()

		updated, err := repo.CompleteExpired(today, nowMinutes)
		if err != nil {
			logger.Error("booking sweep failed", zap.Error(err))
			return
		}
		if updated > 0 {
			logger.Info("completed expired bookings", zap.Int64("count", updated))
		}
	})
	if err != nil {
		logger.Fatal("failed to schedule booking sweeper", zap.Error(err))
	}

	c.Start()
	return c
}
