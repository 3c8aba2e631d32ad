package repository

import (
	"github.com/musama5293/NPI-Portal-sub003/internal/database"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"

	"gorm.io/gorm/clause"
)

// SeedQuestions upserts the YAML catalog into the question bank. Reference
// data only; the engine never writes questions outside seeding.
func SeedQuestions(questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&questions).Error
}

// GetQuestionsForTest returns the catalog subset scoring needs for one test.
func GetQuestionsForTest(testID uint) ([]models.Question, error) {
	var questions []models.Question
	err := database.DB.
		Where("test_id = ?", testID).
		Order("id").
		Find(&questions).Error
	return questions, err
}
