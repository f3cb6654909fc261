package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userRepo "bookmycourt/database/repository/user"
	"bookmycourt/models"
	"bookmycourt/utils"
)

const tokenDuration = 72 * time.Hour

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates an account and returns it with a signed JWT.
func (s *DefaultUserService) Register(input models.RegisterInput) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Role:         models.RoleUser,
	}
	if err := s.Repo.Create(usr); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, tokenDuration)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Authenticate checks credentials and returns the user with a signed JWT.
func (s *DefaultUserService) Authenticate(input models.LoginInput) (*models.User, string, error) {
	usr, err := s.Repo.GetByEmail(input.Email)
	if err != nil {
		return nil, "", err
	}
	if usr == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, tokenDuration)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, ErrUserNotFound
	}
	return usr, nil
}

func (s *DefaultUserService) UpdateProfile(id string, input models.UserUpdateInput) (*models.User, error) {
	usr, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		usr.Name = input.Name
	}
	if input.Phone != "" {
		usr.Phone = input.Phone
	}
	if err := s.Repo.Update(usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (s *DefaultUserService) GetAll() ([]models.User, error) {
	return s.Repo.GetAll()
}
