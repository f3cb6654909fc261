package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmycourt/models"
)

// RegisterUserHandler creates an account and returns it with a token.
func (hb *HandlerBundle) RegisterUserHandler(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	usr, token, err := hb.UserService.Register(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": usr, "token": token})
}

// AuthenticateUserHandler checks credentials and returns a token.
func (hb *HandlerBundle) AuthenticateUserHandler(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	usr, token, err := hb.UserService.Authenticate(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": usr, "token": token})
}

// GetProfileHandler returns the authenticated user's profile.
func (hb *HandlerBundle) GetProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")
	usr, err := hb.UserService.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateProfileHandler updates the authenticated user's profile.
func (hb *HandlerBundle) UpdateProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var input models.UserUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	usr, err := hb.UserService.UpdateProfile(userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}
