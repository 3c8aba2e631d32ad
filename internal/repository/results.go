package repository

import (
	"github.com/musama5293/NPI-Portal-sub003/internal/database"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

func GetResultSnapshot(assignmentID uint) (*models.ResultSnapshot, error) {
	var snapshot models.ResultSnapshot
	err := database.DB.Where("assignment_id = ?", assignmentID).First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
