package postgres

import (
	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"gorm.io/gorm"
)

// Repository is the database-backed store.
type Repository struct {
	db     *gorm.DB
	scores repositories.ScoreRepository
	school repositories.SchoolProfileRepository
}

var _ repositories.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:     db,
		scores: NewScorePostgreSQL(db),
		school: NewSchoolProfilePostgreSQL(db),
	}
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.ScoreRow{}, &models.SchoolProfile{})
}

func (r *Repository) Scores() repositories.ScoreRepository {
	return r.scores
}

func (r *Repository) SchoolProfiles() repositories.SchoolProfileRepository {
	return r.school
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
