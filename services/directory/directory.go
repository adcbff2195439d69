package directory

import (
	"sort"

	"go.uber.org/zap"

	"mindhaven/models"
)

// TherapistDirectory answers filtered queries over the therapist catalog.
type TherapistDirectory interface {
	Search(criteria models.SearchCriteria) []models.Therapist
	GetByID(id string) (models.Therapist, bool)
	DistinctSpecialties() []string
	DistinctAvailabilityDays() []string
}

// DefaultTherapistDirectory implements TherapistDirectory over an in-memory
// catalog. The catalog is read-only after construction, so concurrent reads
// need no locking.
type DefaultTherapistDirectory struct {
	catalog []models.Therapist
	logger  *zap.Logger
}

func NewDirectory(catalog []models.Therapist, logger *zap.Logger) *DefaultTherapistDirectory {
	return &DefaultTherapistDirectory{catalog: catalog, logger: logger}
}

// Search returns the therapists matching the criteria, in catalog order.
// Empty criteria fields act as wildcards. No match yields an empty slice,
// never an error.
func (d *DefaultTherapistDirectory) Search(criteria models.SearchCriteria) []models.Therapist {
	results := make([]models.Therapist, 0)
	for _, t := range d.catalog {
		if criteria.Specialty != "" && !t.HasSpecialty(criteria.Specialty) {
			continue
		}
		if criteria.Day != "" {
			if _, ok := t.AvailabilityFor(criteria.Day); !ok {
				continue
			}
		}
		results = append(results, t)
	}

	if len(results) == 0 {
		d.logger.Info("No therapists matched search",
			zap.String("specialty", criteria.Specialty),
			zap.String("day", criteria.Day))
	}
	return results
}

// GetByID looks up a single therapist by id.
func (d *DefaultTherapistDirectory) GetByID(id string) (models.Therapist, bool) {
	for _, t := range d.catalog {
		if t.ID == id {
			return t, true
		}
	}
	return models.Therapist{}, false
}

// DistinctSpecialties returns every specialty in the catalog, deduplicated
// and sorted. Used to populate the specialty filter.
func (d *DefaultTherapistDirectory) DistinctSpecialties() []string {
	seen := make(map[string]struct{})
	var specialties []string
	for _, t := range d.catalog {
		for _, s := range t.Specialties {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				specialties = append(specialties, s)
			}
		}
	}
	sort.Strings(specialties)
	return specialties
}

// DistinctAvailabilityDays returns every working day in the catalog,
// deduplicated and sorted. Used to populate the day filter.
func (d *DefaultTherapistDirectory) DistinctAvailabilityDays() []string {
	seen := make(map[string]struct{})
	var days []string
	for _, t := range d.catalog {
		for _, a := range t.Availability {
			if _, ok := seen[a.Day]; !ok {
				seen[a.Day] = struct{}{}
				days = append(days, a.Day)
			}
		}
	}
	sort.Strings(days)
	return days
}
