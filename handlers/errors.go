package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmycourt/services/booking"
	"bookmycourt/services/court"
	"bookmycourt/services/user"
	"bookmycourt/utils"
)

// respondServiceError maps service-layer errors to HTTP responses. Conflict
// responses carry a "conflict" indicator so clients can prompt for another
// time slot.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var conflictErr *booking.ConflictError
	var notFoundErr *booking.NotFoundError
	var stateErr *booking.StateError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message, "conflict": true})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": stateErr.Message})
	case errors.Is(err, court.ErrCourtNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
	case errors.Is(err, court.ErrInvalidHours):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, user.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
