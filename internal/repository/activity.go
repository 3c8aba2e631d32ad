package repository

import (
	"github.com/musama5293/NPI-Portal-sub003/internal/database"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

// AppendActivity appends a batch of client events to an assignment's log.
// The log is append-only; nothing here updates or deletes.
func AppendActivity(assignmentID uint, entries []models.ActivityLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].ID = 0
		entries[i].AssignmentID = assignmentID
	}
	return database.DB.Create(&entries).Error
}

// GetActivityLog returns an assignment's events ordered by client timestamp,
// with insertion order as the tiebreaker. The reducer relies on this
// ordering and rejects anything out of order.
func GetActivityLog(assignmentID uint) ([]models.ActivityLogEntry, error) {
	var entries []models.ActivityLogEntry
	err := database.DB.
		Where("assignment_id = ?", assignmentID).
		Order("timestamp, id").
		Find(&entries).Error
	return entries, err
}
