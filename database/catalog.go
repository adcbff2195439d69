package database

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"mindhaven/models"
	"mindhaven/utils"
)

// LoadCatalog reads the therapist catalog from a JSON file. The catalog is
// read-only reference data: it is loaded once at startup and never written
// back. An empty path returns the embedded seed catalog.
func LoadCatalog(path string) ([]models.Therapist, error) {
	logger := utils.GetLogger()

	if path == "" {
		logger.Info("No catalog path configured, using seed catalog",
			zap.Int("therapists", len(seedCatalog)))
		return seedCatalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var catalog []models.Therapist
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	for i, t := range catalog {
		if t.ID == "" || t.Name == "" {
			return nil, fmt.Errorf("catalog entry %d is missing an id or name", i)
		}
	}

	logger.Info("Loaded therapist catalog", zap.String("path", path),
		zap.Int("therapists", len(catalog)))
	return catalog, nil
}

// seedCatalog mirrors the static profile dataset shipped with the product.
var seedCatalog = []models.Therapist{
	{
		ID:          "t-001",
		Name:        "Dr. Sarah Mitchell",
		Specialties: []string{"Anxiety", "Depression"},
		Availability: []models.DayAvailability{
			{Day: "Monday", Hours: "9:00 - 17:00"},
			{Day: "Wednesday", Hours: "10:00 - 16:00"},
			{Day: "Friday", Hours: "9:00 - 13:00"},
		},
	},
	{
		ID:          "t-002",
		Name:        "Dr. James Okafor",
		Specialties: []string{"Trauma", "PTSD", "Anxiety"},
		Availability: []models.DayAvailability{
			{Day: "Tuesday", Hours: "8:00 - 14:00"},
			{Day: "Thursday", Hours: "12:00 - 18:00"},
		},
	},
	{
		ID:          "t-003",
		Name:        "Dr. Elena Vasquez",
		Specialties: []string{"Couples Therapy", "Family Therapy"},
		Availability: []models.DayAvailability{
			{Day: "Monday", Hours: "11:00 - 19:00"},
			{Day: "Tuesday", Hours: "11:00 - 19:00"},
			{Day: "Saturday", Hours: "9:00 - 12:00"},
		},
	},
	{
		ID:          "t-004",
		Name:        "Dr. Priya Raman",
		Specialties: []string{"Depression", "Grief Counseling"},
		Availability: []models.DayAvailability{
			{Day: "Wednesday", Hours: "9:00 - 15:00"},
			{Day: "Friday", Hours: "13:00 - 18:00"},
		},
	},
	{
		ID:          "t-005",
		Name:        "Dr. Marcus Chen",
		Specialties: []string{"Addiction", "Stress Management"},
		Availability: []models.DayAvailability{
			{Day: "Monday", Hours: "8:00 - 12:00"},
			{Day: "Thursday", Hours: "14:00 - 20:00"},
			{Day: "Sunday", Hours: "10:00 - 14:00"},
		},
	},
}
