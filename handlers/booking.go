package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmycourt/models"
	"bookmycourt/utils"
)

// invalidateAvailability drops the cached slot sequence for the booking's
// (court, date) after a mutation.
func invalidateAvailability(booking *models.Booking) {
	if booking == nil {
		return
	}
	cache := utils.GetCacheClient()
	_ = cache.Del(context.Background(), availabilityCacheKey(booking.CourtID, booking.Date)).Err()
}

// CreateBookingHandler validates and creates a pending booking.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := hb.BookingService.Create(userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	invalidateAvailability(booking)
	c.JSON(http.StatusCreated, booking)
}

// ConfirmBookingHandler verifies payment and confirms a pending booking.
func (hb *HandlerBundle) ConfirmBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var input models.ConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := hb.BookingService.Confirm(userID, c.Param("id"), input.PaymentIntentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	invalidateAvailability(booking)
	c.JSON(http.StatusOK, booking)
}

// CancelBookingHandler cancels a confirmed booking.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")

	booking, err := hb.BookingService.Cancel(userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	invalidateAvailability(booking)
	c.JSON(http.StatusOK, booking)
}

// RateBookingHandler rates a completed booking.
func (hb *HandlerBundle) RateBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var input models.RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := hb.BookingService.Rate(userID, c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// MyBookingsHandler lists the authenticated user's bookings.
func (hb *HandlerBundle) MyBookingsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	bookings, err := hb.BookingService.ListForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
