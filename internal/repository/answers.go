package repository

import (
	"github.com/musama5293/NPI-Portal-sub003/internal/database"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

// SaveAnswer upserts one answer for an assignment. Last write wins per
// (assignment, question); the caller has already checked the assignment is
// still accepting answers.
func SaveAnswer(assignmentID, questionID uint, rawValue int) error {
	query := `INSERT INTO answers (assignment_id, question_id, raw_value, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON CONFLICT (assignment_id, question_id)
		DO UPDATE SET raw_value = EXCLUDED.raw_value, updated_at = NOW();`
	return database.DB.Exec(query, assignmentID, questionID, rawValue).Error
}

func GetAnswersForAssignment(assignmentID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := database.DB.
		Where("assignment_id = ?", assignmentID).
		Order("question_id").
		Find(&answers).Error
	return answers, err
}
