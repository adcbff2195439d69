package models

// DayAvailability is one entry of a therapist's weekly availability. The
// hours string is a 24-hour range of the form "9:00 - 17:00". Availability is
// kept as an ordered list so "first available day" is well-defined.
type DayAvailability struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// Therapist is an immutable catalog record, loaded once at startup.
type Therapist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Specialties  []string          `json:"specialties"`
	Availability []DayAvailability `json:"availability"`
}

// HasSpecialty reports whether the therapist lists the given specialty.
func (t Therapist) HasSpecialty(specialty string) bool {
	for _, s := range t.Specialties {
		if s == specialty {
			return true
		}
	}
	return false
}

// AvailabilityFor returns the hours range for a day, if the therapist works it.
func (t Therapist) AvailabilityFor(day string) (string, bool) {
	for _, a := range t.Availability {
		if a.Day == day {
			return a.Hours, true
		}
	}
	return "", false
}

// Days returns the therapist's working days in catalog order.
func (t Therapist) Days() []string {
	days := make([]string, 0, len(t.Availability))
	for _, a := range t.Availability {
		days = append(days, a.Day)
	}
	return days
}

// FirstDay returns the first entry of the availability list, the default
// day preselected when the therapist is chosen.
func (t Therapist) FirstDay() string {
	if len(t.Availability) == 0 {
		return ""
	}
	return t.Availability[0].Day
}

// SearchCriteria are the optional filters for a directory search. Empty
// fields act as wildcards.
type SearchCriteria struct {
	Specialty string `json:"specialty,omitempty"`
	Day       string `json:"day,omitempty"`
}

// IsEmpty reports whether no filters are applied.
func (c SearchCriteria) IsEmpty() bool {
	return c.Specialty == "" && c.Day == ""
}
