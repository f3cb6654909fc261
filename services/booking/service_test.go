package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	bookingRepo "bookmycourt/database/repository/booking"
	"bookmycourt/models"
)

// fakeBookingRepo is an in-memory BookingRepository that mimics the unique
// active-slot index, including surfacing ErrSlotConflict.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	// afterCreate runs right after a successful insert, used to simulate a
	// competing writer landing inside the race window.
	afterCreate func()
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	for _, existing := range f.bookings {
		if existing.IsActive() && existing.CourtID == b.CourtID &&
			existing.Date == b.Date && existing.Start == b.Start {
			return bookingRepo.ErrSlotConflict
		}
	}
	copied := *b
	f.bookings[b.ID] = &copied
	if f.afterCreate != nil {
		hook := f.afterCreate
		f.afterCreate = nil
		hook()
	}
	return nil
}

func (f *fakeBookingRepo) Delete(id string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrNoMatch
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) FindActiveByCourtDate(courtID, date, excludeID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CourtID == courtID && b.Date == date && b.IsActive() && b.ID != excludeID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetAll(filter bson.M) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(id, newStatus string, extra bson.M, expectCurrent ...string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrNoMatch
	}
	if len(expectCurrent) > 0 {
		matched := false
		for _, s := range expectCurrent {
			if b.Status == s {
				matched = true
				break
			}
		}
		if !matched {
			return bookingRepo.ErrNoMatch
		}
	}
	b.Status = newStatus
	if ref, ok := extra["payment_ref"].(string); ok {
		b.PaymentRef = ref
	}
	return nil
}

func (f *fakeBookingRepo) SetRating(id string, rating models.Rating) error {
	b, ok := f.bookings[id]
	if !ok || b.Status != models.StatusCompleted || b.Rating != nil {
		return bookingRepo.ErrNoMatch
	}
	b.Rating = &rating
	return nil
}

func (f *fakeBookingRepo) CompleteExpired(today string, nowMinutes int) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.Status != models.StatusConfirmed {
			continue
		}
		if b.Date < today || (b.Date == today && b.End <= nowMinutes) {
			b.Status = models.StatusCompleted
			n++
		}
	}
	return n, nil
}

// fakeCourtRepo is an in-memory CourtRepository.
type fakeCourtRepo struct {
	courts map[string]*models.Court
}

func newFakeCourtRepo() *fakeCourtRepo {
	return &fakeCourtRepo{courts: make(map[string]*models.Court)}
}

func (f *fakeCourtRepo) Create(c *models.Court) error {
	copied := *c
	f.courts[c.ID] = &copied
	return nil
}

func (f *fakeCourtRepo) Update(c *models.Court) error {
	copied := *c
	f.courts[c.ID] = &copied
	return nil
}

func (f *fakeCourtRepo) GetByID(id string) (*models.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourtRepo) GetAll(filter bson.M) ([]models.Court, error) {
	var out []models.Court
	for _, c := range f.courts {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourtRepo) SetActive(id string, active bool) error {
	c, ok := f.courts[id]
	if !ok {
		return nil
	}
	c.IsActive = active
	return nil
}

func (f *fakeCourtRepo) AddRating(id string, score int) error {
	c, ok := f.courts[id]
	if !ok {
		return nil
	}
	c.RatingSum += score
	c.RatingCount++
	return nil
}

// fakePayments approves or rejects every payment reference.
type fakePayments struct {
	err error
}

func (f fakePayments) Verify(paymentIntentID string) error { return f.err }

// Fixed clock: 2025-05-10 08:30 local time.
var testNow = time.Date(2025, time.May, 10, 8, 30, 0, 0, time.Local)

const (
	testToday    = "2025-05-10"
	testTomorrow = "2025-05-11"
	testCourtID  = "court-1"
	testUserID   = "user-1"
)

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeCourtRepo) {
	bookings := newFakeBookingRepo()
	courts := newFakeCourtRepo()
	courts.courts[testCourtID] = &models.Court{
		ID:           testCourtID,
		Name:         "Center Court",
		SportType:    "badminton",
		PricePerHour: 500,
		OpenTime:     "06:00",
		CloseTime:    "22:00",
		IsActive:     true,
	}
	svc := &DefaultBookingService{
		BookingRepo: bookings,
		CourtRepo:   courts,
		Payments:    fakePayments{},
		Now:         func() time.Time { return testNow },
	}
	return svc, bookings, courts
}

func mustCreate(t *testing.T, svc *DefaultBookingService, input models.BookingInput) *models.Booking {
	t.Helper()
	b, err := svc.Create(testUserID, input)
	require.NoError(t, err)
	return b
}

func TestCreateBookingComputesTotalAmount(t *testing.T) {
	svc, _, _ := newTestService()

	b := mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 2,
	})

	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, float64(1000), b.TotalAmount)
	assert.Equal(t, 600, b.Start)
	assert.Equal(t, 720, b.End)
	assert.Equal(t, "10:00", b.StartTime)
	assert.Equal(t, "12:00", b.EndTime)
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: "2025-05-09", StartTime: "10:00", Duration: 1,
	})
	assert.IsType(t, &ValidationError{}, err)
}

func TestCreateBookingRejectsBadTimeFormat(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10am", Duration: 1,
	})
	assert.IsType(t, &ValidationError{}, err)
}

func TestCreateBookingRejectsDurationOutOfRange(t *testing.T) {
	svc, _, _ := newTestService()

	for _, d := range []int{0, 9, -1} {
		_, err := svc.Create(testUserID, models.BookingInput{
			CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: d,
		})
		assert.IsType(t, &ValidationError{}, err, "duration %d", d)
	}
}

func TestCreateBookingRejectsMidnightOverflow(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "20:00", Duration: 5,
	})
	assert.IsType(t, &ValidationError{}, err)
}

func TestCreateBookingRejectsOutsideOperatingHours(t *testing.T) {
	svc, _, _ := newTestService()

	// Court operates 06:00-22:00. Starting after close, ending past close,
	// and starting before open are all rejected.
	for _, tc := range []struct {
		start    string
		duration int
	}{
		{"23:00", 1},
		{"21:00", 2},
		{"05:00", 1},
	} {
		_, err := svc.Create(testUserID, models.BookingInput{
			CourtID: testCourtID, Date: testTomorrow, StartTime: tc.start, Duration: tc.duration,
		})
		assert.IsType(t, &ValidationError{}, err, "start %s duration %d", tc.start, tc.duration)
	}

	// The last full slot before close is fine.
	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "21:00", Duration: 1,
	})
	assert.NoError(t, err)
}

func TestCreateBookingTodayRequiresFutureStart(t *testing.T) {
	svc, _, _ := newTestService()

	// now is 08:30, so 08:00 is already past.
	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testToday, StartTime: "08:00", Duration: 1,
	})
	assert.IsType(t, &ValidationError{}, err)

	// 09:00 is strictly in the future.
	_, err = svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testToday, StartTime: "09:00", Duration: 1,
	})
	assert.NoError(t, err)
}

func TestCreateBookingUnknownCourt(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: "missing", Date: testTomorrow, StartTime: "10:00", Duration: 1,
	})
	assert.IsType(t, &NotFoundError{}, err)
}

func TestCreateBookingInactiveCourt(t *testing.T) {
	svc, _, courts := newTestService()
	courts.courts[testCourtID].IsActive = false

	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 1,
	})
	assert.IsType(t, &NotFoundError{}, err)
}

func TestCreateBookingConflictDetection(t *testing.T) {
	svc, _, _ := newTestService()

	// Existing reservation [14:00, 16:00).
	mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "14:00", Duration: 2,
	})

	// [15:00, 17:00) overlaps.
	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "15:00", Duration: 2,
	})
	assert.IsType(t, &ConflictError{}, err)

	// [16:00, 18:00) touches the boundary: no overlap.
	_, err = svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "16:00", Duration: 2,
	})
	assert.NoError(t, err)
}

func TestCreateBookingCancelledDoesNotBlock(t *testing.T) {
	svc, bookings, _ := newTestService()

	b := mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "14:00", Duration: 2,
	})
	bookings.bookings[b.ID].Status = models.StatusCancelled

	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "14:00", Duration: 2,
	})
	assert.NoError(t, err)
}

func TestCreateBookingDuplicateStartSurfacesAsConflict(t *testing.T) {
	svc, bookings, _ := newTestService()

	// Seed an active booking directly so the service pre-check cannot see a
	// difference from a concurrent insert with the same start bucket.
	bookings.bookings["other"] = &models.Booking{
		ID: "other", CourtID: testCourtID, UserID: "user-2",
		Date: testTomorrow, Start: 600, End: 660, Status: models.StatusPending,
	}

	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 1,
	})
	assert.IsType(t, &ConflictError{}, err)
}

func TestCreateBookingRaceLoserRollsBack(t *testing.T) {
	svc, bookings, _ := newTestService()

	// A competing booking with a different start lands between our insert
	// and the post-insert re-check.
	bookings.afterCreate = func() {
		bookings.bookings["rival"] = &models.Booking{
			ID: "rival", CourtID: testCourtID, UserID: "user-2",
			Date: testTomorrow, Start: 630, End: 750, Status: models.StatusConfirmed,
		}
	}

	_, err := svc.Create(testUserID, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 2,
	})
	assert.IsType(t, &ConflictError{}, err)

	// Our insert was rolled back; only the rival remains.
	require.Len(t, bookings.bookings, 1)
	_, ok := bookings.bookings["rival"]
	assert.True(t, ok)
}

func TestConfirmBooking(t *testing.T) {
	svc, _, _ := newTestService()

	b := mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 2,
	})

	confirmed, err := svc.Confirm(testUserID, b.ID, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
	assert.Equal(t, "pi_123", confirmed.PaymentRef)
}

func TestConfirmBookingWrongOwner(t *testing.T) {
	svc, _, _ := newTestService()

	b := mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 2,
	})

	_, err := svc.Confirm("someone-else", b.ID, "pi_123")
	assert.IsType(t, &NotFoundError{}, err)
}

func TestConfirmBookingWrongState(t *testing.T) {
	svc, bookings, _ := newTestService()

	b := mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 2,
	})
	bookings.bookings[b.ID].Status = models.StatusConfirmed

	_, err := svc.Confirm(testUserID, b.ID, "pi_123")
	assert.IsType(t, &StateError{}, err)
}

func TestConfirmBookingPaymentFailure(t *testing.T) {
	svc, _, _ := newTestService()
	svc.Payments = fakePayments{err: NewValidationError("payment has not succeeded")}

	b := mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 2,
	})

	_, err := svc.Confirm(testUserID, b.ID, "pi_bad")
	assert.IsType(t, &ValidationError{}, err)
}

func TestConfirmBookingRechecksConflictsExcludingItself(t *testing.T) {
	svc, bookings, _ := newTestService()

	b := mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 2,
	})

	// An overlapping booking with a different start appeared meanwhile.
	bookings.bookings["rival"] = &models.Booking{
		ID: "rival", CourtID: testCourtID, UserID: "user-2",
		Date: testTomorrow, Start: 660, End: 780, Status: models.StatusConfirmed,
	}

	_, err := svc.Confirm(testUserID, b.ID, "pi_123")
	assert.IsType(t, &ConflictError{}, err)

	// Confirming must not conflict with the booking's own interval.
	delete(bookings.bookings, "rival")
	_, err = svc.Confirm(testUserID, b.ID, "pi_123")
	assert.NoError(t, err)
}

func TestCancelBookingCutoffBoundary(t *testing.T) {
	svc, bookings, _ := newTestService()

	// now is 08:30. A booking starting at 10:31 today is 2h01m away and
	// cancellable; one starting at 10:30 is exactly 2h away and is not.
	confirmedAt := func(start int) string {
		b := &models.Booking{
			ID: FormatTimeOfDay(start), CourtID: testCourtID, UserID: testUserID,
			Date: testToday, Start: start, End: start + 60,
			Status: models.StatusConfirmed,
		}
		bookings.bookings[b.ID] = b
		return b.ID
	}

	id := confirmedAt(10*60 + 31)
	_, err := svc.Cancel(testUserID, id)
	assert.NoError(t, err)

	id = confirmedAt(10*60 + 30)
	_, err = svc.Cancel(testUserID, id)
	assert.IsType(t, &StateError{}, err)
}

func TestCancelBookingRequiresConfirmed(t *testing.T) {
	svc, _, _ := newTestService()

	b := mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 2,
	})

	_, err := svc.Cancel(testUserID, b.ID)
	assert.IsType(t, &StateError{}, err)
}

func TestRateBooking(t *testing.T) {
	svc, bookings, courts := newTestService()

	b := &models.Booking{
		ID: "done", CourtID: testCourtID, UserID: testUserID,
		Date: "2025-05-01", Start: 600, End: 720,
		Status: models.StatusCompleted,
	}
	bookings.bookings[b.ID] = b

	rated, err := svc.Rate(testUserID, b.ID, models.RatingInput{Score: 4, Comment: "good surface"})
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 4, rated.Rating.Score)

	court := courts.courts[testCourtID]
	assert.Equal(t, 4, court.RatingSum)
	assert.Equal(t, 1, court.RatingCount)

	// Double rating is rejected.
	_, err = svc.Rate(testUserID, b.ID, models.RatingInput{Score: 5})
	assert.IsType(t, &StateError{}, err)
}

func TestRateBookingRequiresCompleted(t *testing.T) {
	svc, _, _ := newTestService()

	b := mustCreate(t, svc, models.BookingInput{
		CourtID: testCourtID, Date: testTomorrow, StartTime: "10:00", Duration: 2,
	})

	_, err := svc.Rate(testUserID, b.ID, models.RatingInput{Score: 5})
	assert.IsType(t, &StateError{}, err)
}

func TestAdminUpdateStatus(t *testing.T) {
	svc, bookings, _ := newTestService()

	b := &models.Booking{
		ID: "b1", CourtID: testCourtID, UserID: testUserID,
		Date: testToday, Start: 360, End: 420,
		Status: models.StatusConfirmed,
	}
	bookings.bookings[b.ID] = b

	updated, err := svc.AdminUpdateStatus(b.ID, models.StatusNoShow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNoShow, updated.Status)

	_, err = svc.AdminUpdateStatus(b.ID, models.StatusCompleted)
	assert.IsType(t, &StateError{}, err)

	_, err = svc.AdminUpdateStatus(b.ID, "archived")
	assert.IsType(t, &ValidationError{}, err)
}

func TestIsAvailableDisjointSet(t *testing.T) {
	svc, bookings, _ := newTestService()

	for i, start := range []int{360, 480, 600} {
		id := FormatTimeOfDay(start)
		bookings.bookings[id] = &models.Booking{
			ID: id, CourtID: testCourtID, UserID: testUserID,
			Date: testTomorrow, Start: start, End: start + 60,
			Status: []string{models.StatusPending, models.StatusConfirmed}[i%2],
		}
	}

	// Disjoint from every existing reservation.
	ok, err := svc.IsAvailable(testCourtID, testTomorrow, Interval{Start: 420, End: 480}, "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAvailable(testCourtID, testTomorrow, Interval{Start: 390, End: 450}, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAvailabilityEndpointShape(t *testing.T) {
	svc, bookings, _ := newTestService()

	bookings.bookings["b1"] = &models.Booking{
		ID: "b1", CourtID: testCourtID, UserID: testUserID,
		Date: testToday, Start: 14 * 60, End: 16 * 60,
		Status: models.StatusConfirmed,
	}

	resp, err := svc.Availability(testCourtID, testToday)
	require.NoError(t, err)

	assert.Equal(t, "06:00", resp.OpenTime)
	assert.Equal(t, "22:00", resp.CloseTime)
	require.Len(t, resp.Slots, 16)

	for _, s := range resp.Slots {
		switch {
		case s.Start <= 8*60+30:
			assert.False(t, s.Available, "slot %s already started", s.StartTime)
		case s.Start == 14*60 || s.Start == 15*60:
			assert.False(t, s.Available, "slot %s is reserved", s.StartTime)
		default:
			assert.True(t, s.Available, "slot %s should be bookable", s.StartTime)
		}
	}
}

func TestAvailabilityRejectsPastDate(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Availability(testCourtID, "2025-05-09")
	assert.IsType(t, &ValidationError{}, err)
}

func TestAvailabilityUnknownCourt(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Availability("missing", testToday)
	assert.IsType(t, &NotFoundError{}, err)
}
