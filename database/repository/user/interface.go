package userRepo

import (
	"errors"

	"bookmycourt/models"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	// GetByID retrieves a user by ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by email. Returns (nil, nil) when absent.
	GetByEmail(email string) (*models.User, error)
	GetAll() ([]models.User, error)
}
