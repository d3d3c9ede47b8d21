package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"gorm.io/gorm"
)

type ScorePostgreSQL struct {
	db *gorm.DB
}

func NewScorePostgreSQL(db *gorm.DB) repositories.ScoreRepository {
	return &ScorePostgreSQL{db: db}
}

// UpsertSubmission deletes the submission's rows and inserts the new set in one transaction.
func (s *ScorePostgreSQL) UpsertSubmission(ctx context.Context, key models.SubmissionKey, rows []models.ScoreRow) error {
	if key.IsZero() {
		return errors.New("upsert submission: empty key")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := byKey(tx, key).Delete(&models.ScoreRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		inserts := make([]models.ScoreRow, len(rows))
		for i, row := range rows {
			row.ID = 0
			row.StudentName, row.Term, row.Session = key.StudentName, key.Term, key.Session
			inserts[i] = row
		}
		return tx.Create(&inserts).Error
	})
}

func (s *ScorePostgreSQL) Find(ctx context.Context, studentName string, filters repositories.ScoreFilters) ([]models.ScoreRow, error) {
	filters.StudentName = &studentName
	db := s.db.WithContext(ctx)

	if filters.Term == nil || filters.Session == nil {
		var latest models.ScoreRow
		err := applyFilters(db.Model(&models.ScoreRow{}), filters).Order("id DESC").First(&latest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.ScoreRow{}, nil
		}
		if err != nil {
			return nil, err
		}
		filters.Term, filters.Session = &latest.Term, &latest.Session
	}

	return s.List(ctx, filters)
}

func (s *ScorePostgreSQL) List(ctx context.Context, filters repositories.ScoreFilters) ([]models.ScoreRow, error) {
	var rows []models.ScoreRow
	if err := applyFilters(s.db.WithContext(ctx), filters).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Regrade()
	}
	return rows, nil
}

// DistinctStudents lists names by the first row stored for each.
func (s *ScorePostgreSQL) DistinctStudents(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.ScoreRow{}).
		Where("student_name <> ''").
		Group("student_name").
		Order("MIN(id)").
		Pluck("student_name", &names).Error
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func byKey(db *gorm.DB, key models.SubmissionKey) *gorm.DB {
	return db.Where("student_name = ? AND term = ? AND session = ?", key.StudentName, key.Term, key.Session)
}

func applyFilters(db *gorm.DB, filters repositories.ScoreFilters) *gorm.DB {
	if filters.StudentName != nil {
		db = db.Where("student_name = ?", *filters.StudentName)
	}
	if filters.Term != nil {
		db = db.Where("term = ?", *filters.Term)
	}
	if filters.Session != nil {
		db = db.Where("session = ?", *filters.Session)
	}
	if filters.Subject != nil {
		db = db.Where("subject = ?", *filters.Subject)
	}
	return db
}
