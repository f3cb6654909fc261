package user

import (
	"errors"

	"bookmycourt/models"
)

// ErrInvalidCredentials indicates a failed email/password check.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUserNotFound indicates the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken indicates the registration email is already in use.
var ErrEmailTaken = errors.New("email already registered")

// UserService defines account operations.
type UserService interface {
	Register(input models.RegisterInput) (*models.User, string, error)
	Authenticate(input models.LoginInput) (*models.User, string, error)
	GetByID(id string) (*models.User, error)
	UpdateProfile(id string, input models.UserUpdateInput) (*models.User, error)
	GetAll() ([]models.User, error)
}
