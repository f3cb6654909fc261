package court

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	courtRepo "bookmycourt/database/repository/court"
	"bookmycourt/models"
	"bookmycourt/services/booking"
)

// DefaultCourtService implements CourtService.
type DefaultCourtService struct {
	Repo courtRepo.CourtRepository
}

// validateHours checks the configured operating hours, defaulting unset ones.
func validateHours(input *models.CourtInput) error {
	if input.OpenTime == "" {
		input.OpenTime = models.DefaultOpenTime
	}
	if input.CloseTime == "" {
		input.CloseTime = models.DefaultCloseTime
	}
	open, err := booking.ParseTimeOfDay(input.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	close, err := booking.ParseTimeOfDay(input.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	if open >= close {
		return fmt.Errorf("%w: opening time %s is not before closing time %s", ErrInvalidHours, input.OpenTime, input.CloseTime)
	}
	return nil
}

func (s *DefaultCourtService) Create(input models.CourtInput) (*models.Court, error) {
	if err := validateHours(&input); err != nil {
		return nil, err
	}

	court := &models.Court{
		ID:           uuid.New().String(),
		Name:         input.Name,
		SportType:    input.SportType,
		Description:  input.Description,
		Location:     input.Location,
		PricePerHour: input.PricePerHour,
		OpenTime:     input.OpenTime,
		CloseTime:    input.CloseTime,
		Images:       input.Images,
		IsActive:     true,
	}
	if err := s.Repo.Create(court); err != nil {
		return nil, err
	}
	return court, nil
}

func (s *DefaultCourtService) Update(id string, input models.CourtInput) (*models.Court, error) {
	court, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateHours(&input); err != nil {
		return nil, err
	}

	court.Name = input.Name
	court.SportType = input.SportType
	court.Description = input.Description
	court.Location = input.Location
	court.PricePerHour = input.PricePerHour
	court.OpenTime = input.OpenTime
	court.CloseTime = input.CloseTime
	if input.Images != nil {
		court.Images = input.Images
	}

	if err := s.Repo.Update(court); err != nil {
		if errors.Is(err, courtRepo.ErrNoMatch) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return court, nil
}

func (s *DefaultCourtService) GetByID(id string) (*models.Court, error) {
	court, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if court == nil {
		return nil, ErrCourtNotFound
	}
	court.AvgRating = court.AverageRating()
	return court, nil
}

func (s *DefaultCourtService) List(sportType string) ([]models.Court, error) {
	filter := bson.M{"is_active": true}
	if sportType != "" {
		filter["sport_type"] = sportType
	}
	courts, err := s.Repo.GetAll(filter)
	if err != nil {
		return nil, err
	}
	for i := range courts {
		courts[i].AvgRating = courts[i].AverageRating()
	}
	return courts, nil
}

func (s *DefaultCourtService) Deactivate(id string) error {
	if err := s.Repo.SetActive(id, false); err != nil {
		if errors.Is(err, courtRepo.ErrNoMatch) {
			return ErrCourtNotFound
		}
		return err
	}
	return nil
}
