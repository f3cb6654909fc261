package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookmycourt/models"
	"bookmycourt/utils"
)

// Availability results are cached briefly; booking mutations invalidate the
// affected (court, date) entry.
const availabilityCacheTTL = 30 * time.Second

func availabilityCacheKey(courtID, date string) string {
	return "availability:" + courtID + ":" + date
}

// ListCourtsHandler returns active courts, optionally filtered by sport type.
func (hb *HandlerBundle) ListCourtsHandler(c *gin.Context) {
	courts, err := hb.CourtService.List(c.Query("sport"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courts": courts})
}

// GetCourtHandler returns a single court by ID.
func (hb *HandlerBundle) GetCourtHandler(c *gin.Context) {
	crt, err := hb.CourtService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, crt)
}

// CourtAvailabilityHandler returns the hourly slot sequence for a court on a
// date, serving a short-lived cached copy when one exists.
func (hb *HandlerBundle) CourtAvailabilityHandler(c *gin.Context) {
	courtID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	ctx := context.Background()
	cache := utils.GetCacheClient()
	cacheKey := availabilityCacheKey(courtID, date)

	if cached, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var resp models.AvailabilityResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := hb.BookingService.Availability(courtID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if data, err := json.Marshal(resp); err == nil {
		_ = cache.Set(ctx, cacheKey, data, availabilityCacheTTL).Err()
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCourtHandler creates a court. Admin only.
func (hb *HandlerBundle) CreateCourtHandler(c *gin.Context) {
	var input models.CourtInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	crt, err := hb.CourtService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, crt)
}

// UpdateCourtHandler updates a court. Admin only.
func (hb *HandlerBundle) UpdateCourtHandler(c *gin.Context) {
	var input models.CourtInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	crt, err := hb.CourtService.Update(c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, crt)
}

// DeactivateCourtHandler soft-deletes a court. Admin only.
func (hb *HandlerBundle) DeactivateCourtHandler(c *gin.Context) {
	if err := hb.CourtService.Deactivate(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "court deactivated"})
}
