package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	bookingRepo "bookmycourt/database/repository/booking"
	courtRepo "bookmycourt/database/repository/court"
	userRepo "bookmycourt/database/repository/user"
	"bookmycourt/models"
	"bookmycourt/services/notification"
	"bookmycourt/utils"
)

const (
	dateLayout  = "2006-01-02"
	minDuration = 1
	maxDuration = 8
	// A confirmed booking is cancellable only while its start is strictly
	// more than this far away.
	cancelCutoff = 2 * time.Hour
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	BookingRepo  bookingRepo.BookingRepository
	CourtRepo    courtRepo.CourtRepository
	UserRepo     userRepo.UserRepository
	Notification notification.NotificationService
	Payments     PaymentVerifier
	// Now supplies the clock; nil means time.Now. Injected in tests.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// activeCourt fetches a court and rejects missing or deactivated ones.
func (s *DefaultBookingService) activeCourt(courtID string) (*models.Court, error) {
	court, err := s.CourtRepo.GetByID(courtID)
	if err != nil {
		return nil, err
	}
	if court == nil || !court.IsActive {
		return nil, NewNotFoundError("court %s does not exist or is inactive", courtID)
	}
	return court, nil
}

// activeIntervals fetches the occupied intervals for (court, date), leaving
// out excludeID when re-validating a booking against everything but itself.
func (s *DefaultBookingService) activeIntervals(courtID, date, excludeID string) ([]Interval, error) {
	existing, err := s.BookingRepo.FindActiveByCourtDate(courtID, date, excludeID)
	if err != nil {
		return nil, err
	}
	intervals := make([]Interval, 0, len(existing))
	for _, b := range existing {
		intervals = append(intervals, Interval{Start: b.Start, End: b.End})
	}
	return intervals, nil
}

// IsAvailable reports whether the proposed interval is free of conflicts with
// active bookings for (court, date), excluding excludeID if non-empty.
func (s *DefaultBookingService) IsAvailable(courtID, date string, proposed Interval, excludeID string) (bool, error) {
	intervals, err := s.activeIntervals(courtID, date, excludeID)
	if err != nil {
		return false, err
	}
	return !conflictsWith(proposed, intervals), nil
}

// Availability computes the hourly slot sequence for a court on a date.
func (s *DefaultBookingService) Availability(courtID, date string) (*models.AvailabilityResponse, error) {
	court, err := s.activeCourt(courtID)
	if err != nil {
		return nil, err
	}

	if _, err := time.ParseInLocation(dateLayout, date, time.Local); err != nil {
		return nil, NewValidationError("invalid date %q, expected YYYY-MM-DD", date)
	}

	now := s.now()
	today := now.Format(dateLayout)
	if date < today {
		return nil, NewValidationError("date %s is in the past", date)
	}

	hours, err := operatingHoursFrom(court.OpenTime, court.CloseTime, models.DefaultOpenTime, models.DefaultCloseTime)
	if err != nil {
		return nil, err
	}

	intervals, err := s.activeIntervals(courtID, date, "")
	if err != nil {
		return nil, err
	}

	isToday := date == today
	nowMinutes := now.Hour()*60 + now.Minute()
	slots := GenerateSlots(hours, intervals, nowMinutes, isToday)

	return &models.AvailabilityResponse{
		CourtID:   courtID,
		Date:      date,
		OpenTime:  FormatTimeOfDay(hours.Open),
		CloseTime: FormatTimeOfDay(hours.Close),
		Slots:     slots,
	}, nil
}

// Create validates a booking request end-to-end and persists it in pending
// status. The conflict check runs twice: once before the insert and once
// right after it, with the unique active-slot index backing both up.
func (s *DefaultBookingService) Create(userID string, input models.BookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	court, err := s.activeCourt(input.CourtID)
	if err != nil {
		return nil, err
	}

	if _, err := time.ParseInLocation(dateLayout, input.Date, time.Local); err != nil {
		return nil, NewValidationError("invalid date %q, expected YYYY-MM-DD", input.Date)
	}

	now := s.now()
	today := now.Format(dateLayout)
	if input.Date < today {
		return nil, NewValidationError("booking date %s is in the past", input.Date)
	}

	start, err := ParseTimeOfDay(input.StartTime)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	if input.Duration < minDuration || input.Duration > maxDuration {
		return nil, NewValidationError("duration must be between %d and %d hours", minDuration, maxDuration)
	}

	proposed := Interval{Start: start, End: start + input.Duration*60}
	if !proposed.Valid() {
		return nil, NewValidationError("booking from %s for %d hours runs past midnight", input.StartTime, input.Duration)
	}

	// The slot grid only offers intervals within [open, close); reject direct
	// requests outside it too.
	hours, err := operatingHoursFrom(court.OpenTime, court.CloseTime, models.DefaultOpenTime, models.DefaultCloseTime)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	if proposed.Start < hours.Open || proposed.End > hours.Close {
		return nil, NewValidationError("booking %s-%s is outside operating hours %s-%s",
			FormatTimeOfDay(proposed.Start), FormatTimeOfDay(proposed.End),
			FormatTimeOfDay(hours.Open), FormatTimeOfDay(hours.Close))
	}

	if input.Date == today {
		startAt := time.Date(now.Year(), now.Month(), now.Day(), start/60, start%60, 0, 0, now.Location())
		if !startAt.After(now) {
			return nil, NewValidationError("start time %s is not in the future", input.StartTime)
		}
	}

	// Pre-check.
	available, err := s.IsAvailable(input.CourtID, input.Date, proposed, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, NewConflictError("the requested time slot is already booked")
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		CourtID:     input.CourtID,
		UserID:      userID,
		Date:        input.Date,
		Start:       proposed.Start,
		End:         proposed.End,
		StartTime:   FormatTimeOfDay(proposed.Start),
		EndTime:     FormatTimeOfDay(proposed.End),
		Duration:    input.Duration,
		TotalAmount: court.PricePerHour * float64(input.Duration),
		Status:      models.StatusPending,
	}

	if err := s.BookingRepo.Create(booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			return nil, NewConflictError("the requested time slot was just booked by someone else")
		}
		return nil, err
	}

	// Re-check immediately after commit. The unique index already rules out
	// identical start buckets; this catches overlapping intervals with
	// different starts that slipped through the race window.
	available, err = s.IsAvailable(input.CourtID, input.Date, proposed, booking.ID)
	if err == nil && !available {
		if delErr := s.BookingRepo.Delete(booking.ID); delErr != nil {
			logger.Error("failed to roll back conflicting booking",
				zap.String("bookingID", booking.ID), zap.Error(delErr))
		}
		return nil, NewConflictError("the requested time slot was just booked by someone else")
	}
	if err != nil {
		logger.Warn("post-insert conflict re-check failed",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("courtID", booking.CourtID),
		zap.String("date", booking.Date),
		zap.String("start", booking.StartTime))
	return booking, nil
}

// Confirm verifies payment, re-checks availability excluding the booking
// itself and flips pending to confirmed.
func (s *DefaultBookingService) Confirm(userID, bookingID, paymentIntentID string) (*models.Booking, error) {
	booking, err := s.ownedBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusPending {
		return nil, NewStateError("only pending bookings can be confirmed, booking is %s", booking.Status)
	}

	if err := s.Payments.Verify(paymentIntentID); err != nil {
		return nil, err
	}

	proposed := Interval{Start: booking.Start, End: booking.End}
	available, err := s.IsAvailable(booking.CourtID, booking.Date, proposed, booking.ID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, NewConflictError("the time slot is no longer available")
	}

	extra := bson.M{"payment_ref": paymentIntentID}
	if err := s.BookingRepo.UpdateStatus(bookingID, models.StatusConfirmed, extra, models.StatusPending); err != nil {
		if errors.Is(err, bookingRepo.ErrNoMatch) {
			return nil, NewStateError("booking %s is no longer pending", bookingID)
		}
		return nil, err
	}
	booking.Status = models.StatusConfirmed
	booking.PaymentRef = paymentIntentID

	s.notify(booking, func(n notification.NotificationService, b *models.Booking, c *models.Court, u *models.User) {
		n.BookingConfirmed(b, c, u)
	})
	return booking, nil
}

// Cancel transitions a confirmed booking to cancelled. Allowed only while the
// start is strictly more than two hours away.
func (s *DefaultBookingService) Cancel(userID, bookingID string) (*models.Booking, error) {
	booking, err := s.ownedBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusConfirmed {
		return nil, NewStateError("only confirmed bookings can be cancelled, booking is %s", booking.Status)
	}

	day, err := time.ParseInLocation(dateLayout, booking.Date, time.Local)
	if err != nil {
		return nil, NewValidationError("booking has invalid date %q", booking.Date)
	}
	startAt := day.Add(time.Duration(booking.Start) * time.Minute)
	if startAt.Sub(s.now()) <= cancelCutoff {
		return nil, NewStateError("bookings can only be cancelled more than %s before start", cancelCutoff)
	}

	if err := s.BookingRepo.UpdateStatus(bookingID, models.StatusCancelled, nil, models.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrNoMatch) {
			return nil, NewStateError("booking %s is no longer confirmed", bookingID)
		}
		return nil, err
	}
	booking.Status = models.StatusCancelled

	s.notify(booking, func(n notification.NotificationService, b *models.Booking, c *models.Court, u *models.User) {
		n.BookingCancelled(b, c, u)
	})
	return booking, nil
}

// Rate attaches a one-time rating to a completed booking.
func (s *DefaultBookingService) Rate(userID, bookingID string, input models.RatingInput) (*models.Booking, error) {
	booking, err := s.ownedBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusCompleted {
		return nil, NewStateError("only completed bookings can be rated, booking is %s", booking.Status)
	}
	if booking.Rating != nil {
		return nil, NewStateError("booking %s has already been rated", bookingID)
	}

	rating := models.Rating{
		Score:     input.Score,
		Comment:   input.Comment,
		CreatedAt: s.now(),
	}
	if err := s.BookingRepo.SetRating(bookingID, rating); err != nil {
		if errors.Is(err, bookingRepo.ErrNoMatch) {
			return nil, NewStateError("booking %s cannot be rated", bookingID)
		}
		return nil, err
	}
	booking.Rating = &rating

	if err := s.CourtRepo.AddRating(booking.CourtID, input.Score); err != nil {
		utils.GetLogger().Warn("failed to update court rating aggregate",
			zap.String("courtID", booking.CourtID), zap.Error(err))
	}
	return booking, nil
}

// ListForUser returns the user's bookings, newest first.
func (s *DefaultBookingService) ListForUser(userID string) ([]models.Booking, error) {
	return s.BookingRepo.FindByUser(userID)
}

// ListAll returns every booking, newest first.
func (s *DefaultBookingService) ListAll() ([]models.Booking, error) {
	return s.BookingRepo.GetAll(nil)
}

// AdminUpdateStatus transitions a confirmed booking to completed or no-show.
func (s *DefaultBookingService) AdminUpdateStatus(bookingID, newStatus string) (*models.Booking, error) {
	if newStatus != models.StatusCompleted && newStatus != models.StatusNoShow {
		return nil, NewValidationError("status must be %q or %q", models.StatusCompleted, models.StatusNoShow)
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NewNotFoundError("booking %s not found", bookingID)
	}
	if booking.Status != models.StatusConfirmed {
		return nil, NewStateError("only confirmed bookings can be marked %s, booking is %s", newStatus, booking.Status)
	}

	if err := s.BookingRepo.UpdateStatus(bookingID, newStatus, nil, models.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrNoMatch) {
			return nil, NewStateError("booking %s is no longer confirmed", bookingID)
		}
		return nil, err
	}
	booking.Status = newStatus
	return booking, nil
}

// ownedBooking fetches a booking and checks the caller owns it. Non-owners
// get a not-found, not a forbidden, to avoid leaking booking existence.
func (s *DefaultBookingService) ownedBooking(userID, bookingID string) (*models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.UserID != userID {
		return nil, NewNotFoundError("booking %s not found", bookingID)
	}
	return booking, nil
}

// notify fans a booking event out, fetching court and user context on a best
// effort basis.
func (s *DefaultBookingService) notify(
	booking *models.Booking,
	fn func(notification.NotificationService, *models.Booking, *models.Court, *models.User),
) {
	if s.Notification == nil {
		return
	}
	court, err := s.CourtRepo.GetByID(booking.CourtID)
	if err != nil || court == nil {
		court = &models.Court{ID: booking.CourtID, Name: booking.CourtID}
	}
	var user *models.User
	if s.UserRepo != nil {
		user, _ = s.UserRepo.GetByID(booking.UserID)
	}
	fn(s.Notification, booking, court, user)
}
