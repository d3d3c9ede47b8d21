package models

import (
	"fmt"
	"time"
)

const (
	DefaultSchoolName    = "Your School Name"
	DefaultSchoolAddress = "School Address Here"
)

// SchoolProfile is stored as a single row and overwritten on every save.
type SchoolProfile struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255" validate:"max=255"`
	Address   string    `json:"address" gorm:"size:500" validate:"max=500"`
	UpdatedAt time.Time `json:"-"`
}

func (SchoolProfile) TableName() string {
	return "school_profiles"
}

func DefaultSchoolProfile() SchoolProfile {
	return SchoolProfile{Name: DefaultSchoolName, Address: DefaultSchoolAddress}
}

// WithDefaults fills blank fields from the default profile.
func (p SchoolProfile) WithDefaults() SchoolProfile {
	if p.Name == "" {
		p.Name = DefaultSchoolName
	}
	if p.Address == "" {
		p.Address = DefaultSchoolAddress
	}
	return p
}

// Academic sessions offered by the entry form.
const (
	FirstSessionYear = 2020
	LastSessionYear  = 2030
)

// AcademicSessions returns the "YYYY/YYYY+1" labels offered for selection.
func AcademicSessions() []string {
	sessions := make([]string, 0, LastSessionYear-FirstSessionYear+1)
	for year := FirstSessionYear; year <= LastSessionYear; year++ {
		sessions = append(sessions, SessionLabel(year))
	}
	return sessions
}

func SessionLabel(startYear int) string {
	return fmt.Sprintf("%d/%d", startYear, startYear+1)
}
