package court

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"bookmycourt/models"
)

type fakeCourtRepo struct {
	courts map[string]*models.Court
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

func (f *fakeCourtRepo) SetActive(id string, active bool) error { return nil }

func (f *fakeCourtRepo) AddRating(id string, score int) error { return nil }

func TestValidateHoursDefaultsUnsetTimes(t *testing.T) {
	input := models.CourtInput{Name: "A", SportType: "tennis", PricePerHour: 400}

	err := validateHours(&input)
	assert.NoError(t, err)
	assert.Equal(t, models.DefaultOpenTime, input.OpenTime)
	assert.Equal(t, models.DefaultCloseTime, input.CloseTime)
}

func TestValidateHoursRejectsBadAndInvertedTimes(t *testing.T) {
	cases := []struct {
		name  string
		open  string
		close string
	}{
		{"malformed open", "6am", "22:00"},
		{"malformed close", "06:00", "25:00"},
		{"inverted", "22:00", "06:00"},
		{"equal", "10:00", "10:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := models.CourtInput{Name: "A", SportType: "tennis", PricePerHour: 400, OpenTime: tc.open, CloseTime: tc.close}
			err := validateHours(&input)
			assert.ErrorIs(t, err, ErrInvalidHours)
		})
	}
}

func TestValidateHoursAcceptsHalfHourClose(t *testing.T) {
	input := models.CourtInput{Name: "A", SportType: "tennis", PricePerHour: 400, OpenTime: "10:00", CloseTime: "22:30"}
	assert.NoError(t, validateHours(&input))
}

func TestCourtReadsCarryAverageRating(t *testing.T) {
	repo := &fakeCourtRepo{courts: map[string]*models.Court{
		"c1": {ID: "c1", Name: "Center Court", SportType: "tennis", IsActive: true, RatingSum: 9, RatingCount: 2},
	}}
	svc := &DefaultCourtService{Repo: repo}

	court, err := svc.GetByID("c1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, court.AvgRating)

	courts, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, courts, 1)
	assert.Equal(t, 4.5, courts[0].AvgRating)
}

func TestUnratedCourtAveragesToZero(t *testing.T) {
	repo := &fakeCourtRepo{courts: map[string]*models.Court{
		"c1": {ID: "c1", Name: "Center Court", SportType: "tennis", IsActive: true},
	}}
	svc := &DefaultCourtService{Repo: repo}

	court, err := svc.GetByID("c1")
	require.NoError(t, err)
	assert.Zero(t, court.AvgRating)
}
