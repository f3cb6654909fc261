package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmycourt/models"
)

// AdminListUsersHandler returns all users.
func (hb *HandlerBundle) AdminListUsersHandler(c *gin.Context) {
	users, err := hb.UserService.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// AdminListBookingsHandler returns all bookings.
func (hb *HandlerBundle) AdminListBookingsHandler(c *gin.Context) {
	bookings, err := hb.BookingService.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AdminUpdateBookingStatusHandler marks a confirmed booking completed or
// no-show.
func (hb *HandlerBundle) AdminUpdateBookingStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := hb.BookingService.AdminUpdateStatus(c.Param("id"), input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// AdminBroadcastHandler pushes a notification to all connected clients.
func (hb *HandlerBundle) AdminBroadcastHandler(c *gin.Context) {
	var input models.BroadcastInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	hb.Notification.Broadcast(input.Title, input.Message)
	c.JSON(http.StatusAccepted, gin.H{"message": "notification queued"})
}
