package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mindhaven/models"
)

func testCatalog() []models.Therapist {
	return []models.Therapist{
		{
			ID:          "t-1",
			Name:        "Dr. Adams",
			Specialties: []string{"Anxiety", "Depression"},
			Availability: []models.DayAvailability{
				{Day: "Monday", Hours: "9:00 - 17:00"},
				{Day: "Friday", Hours: "10:00 - 14:00"},
			},
		},
		{
			ID:          "t-2",
			Name:        "Dr. Brooks",
			Specialties: []string{"Trauma"},
			Availability: []models.DayAvailability{
				{Day: "Tuesday", Hours: "8:00 - 12:00"},
			},
		},
		{
			ID:          "t-3",
			Name:        "Dr. Costa",
			Specialties: []string{"Anxiety"},
			Availability: []models.DayAvailability{
				{Day: "Tuesday", Hours: "13:00 - 18:00"},
				{Day: "Monday", Hours: "9:00 - 11:00"},
			},
		},
	}
}

func newTestDirectory() *DefaultTherapistDirectory {
	return NewDirectory(testCatalog(), zap.NewNop())
}

func TestSearch_NoCriteriaReturnsAllInCatalogOrder(t *testing.T) {
	d := newTestDirectory()

	results := d.Search(models.SearchCriteria{})
	require.Len(t, results, 3)
	assert.Equal(t, "t-1", results[0].ID)
	assert.Equal(t, "t-2", results[1].ID)
	assert.Equal(t, "t-3", results[2].ID)
}

func TestSearch_BySpecialty(t *testing.T) {
	d := newTestDirectory()

	results := d.Search(models.SearchCriteria{Specialty: "Anxiety"})
	require.Len(t, results, 2)
	assert.Equal(t, "t-1", results[0].ID)
	assert.Equal(t, "t-3", results[1].ID)
}

func TestSearch_ByDay(t *testing.T) {
	d := newTestDirectory()

	results := d.Search(models.SearchCriteria{Day: "Tuesday"})
	require.Len(t, results, 2)
	assert.Equal(t, "t-2", results[0].ID)
	assert.Equal(t, "t-3", results[1].ID)
}

func TestSearch_CombinedCriteria(t *testing.T) {
	d := newTestDirectory()

	results := d.Search(models.SearchCriteria{Specialty: "Anxiety", Day: "Tuesday"})
	require.Len(t, results, 1)
	assert.Equal(t, "t-3", results[0].ID)
}

func TestSearch_NoMatchIsEmptyNotError(t *testing.T) {
	d := newTestDirectory()

	results := d.Search(models.SearchCriteria{Specialty: "Hypnotherapy"})
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestGetByID(t *testing.T) {
	d := newTestDirectory()

	therapist, ok := d.GetByID("t-2")
	require.True(t, ok)
	assert.Equal(t, "Dr. Brooks", therapist.Name)

	_, ok = d.GetByID("t-99")
	assert.False(t, ok)
}

func TestDistinctSpecialties_SortedAndDeduplicated(t *testing.T) {
	d := newTestDirectory()

	assert.Equal(t, []string{"Anxiety", "Depression", "Trauma"}, d.DistinctSpecialties())
}

func TestDistinctAvailabilityDays_SortedAndDeduplicated(t *testing.T) {
	d := newTestDirectory()

	assert.Equal(t, []string{"Friday", "Monday", "Tuesday"}, d.DistinctAvailabilityDays())
}

func TestTherapist_FirstDayFollowsCatalogOrder(t *testing.T) {
	d := newTestDirectory()

	therapist, ok := d.GetByID("t-3")
	require.True(t, ok)
	// The entry order of the availability list defines the default day.
	assert.Equal(t, "Tuesday", therapist.FirstDay())
}
