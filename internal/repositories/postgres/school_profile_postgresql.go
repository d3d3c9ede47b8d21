package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"gorm.io/gorm"
)

// schoolProfileID is the primary key of the single profile row.
const schoolProfileID = 1

type SchoolProfilePostgreSQL struct {
	db *gorm.DB
}

func NewSchoolProfilePostgreSQL(db *gorm.DB) repositories.SchoolProfileRepository {
	return &SchoolProfilePostgreSQL{db: db}
}

func (s *SchoolProfilePostgreSQL) Get(ctx context.Context) (*models.SchoolProfile, error) {
	var profile models.SchoolProfile
	err := s.db.WithContext(ctx).First(&profile, schoolProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.DefaultSchoolProfile()
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	profile = profile.WithDefaults()
	return &profile, nil
}

// Save overwrites the single profile row.
func (s *SchoolProfilePostgreSQL) Save(ctx context.Context, profile *models.SchoolProfile) error {
	profile.ID = schoolProfileID
	return s.db.WithContext(ctx).Save(profile).Error
}
