package repository

import (
	"errors"
	"time"

	"github.com/musama5293/NPI-Portal-sub003/internal/database"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrAlreadyCompleted reports that a guarded transition found the assignment
// already completed. Callers treat it as the idempotent-duplicate case, not
// a failure.
var ErrAlreadyCompleted = errors.New("assignment already completed")

// CreateAssignment persists a new assignment in the not_started state with a
// fresh public identifier and a shuffled page order for the test's pages.
func CreateAssignment(a *models.TestAssignment, totalPages int) error {
	a.PublicID = uuid.NewString()
	a.CompletionStatus = models.StatusNotStarted

	order := make(pq.Int64Array, totalPages)
	for i := range order {
		order[i] = int64(i)
	}
	a.PageOrder = order

	return database.DB.Create(a).Error
}

func GetAssignmentByPublicID(publicID string) (*models.TestAssignment, error) {
	var a models.TestAssignment
	err := database.DB.Where("public_id = ?", publicID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// MarkStarted persists a start transition. The WHERE clause keeps it
// single-writer safe: a concurrent or repeated start cannot resurrect a
// completed assignment, and start_time is only written once.
func MarkStarted(a *models.TestAssignment) error {
	res := database.DB.Model(&models.TestAssignment{}).
		Where("id = ? AND completion_status <> ?", a.ID, models.StatusCompleted).
		Updates(map[string]interface{}{
			"completion_status": models.StatusStarted,
			"start_time":        gorm.Expr("COALESCE(start_time, ?)", a.StartTime),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyCompleted
	}
	return nil
}

// MarkCompleted persists the completed transition and the materialized result
// snapshot in one transaction. The status guard makes a retried duplicate
// complete a no-op: the second caller sees ErrAlreadyCompleted and reads the
// snapshot the first one wrote, so there can never be two end_times.
func MarkCompleted(a *models.TestAssignment, snapshot *models.ResultSnapshot) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TestAssignment{}).
			Where("id = ? AND completion_status = ?", a.ID, models.StatusStarted).
			Updates(map[string]interface{}{
				"completion_status": models.StatusCompleted,
				"end_time":          a.EndTime,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCompleted
		}
		snapshot.AssignmentID = a.ID
		return tx.Create(snapshot).Error
	})
}

// GetAssignmentsNearingExpiry lists incomplete assignments whose expiry falls
// inside (now, now+window]. Input to the reminder sweep.
func GetAssignmentsNearingExpiry(now time.Time, window time.Duration) ([]models.TestAssignment, error) {
	var assignments []models.TestAssignment
	err := database.DB.
		Where("completion_status <> ? AND expiry_date > ? AND expiry_date <= ?",
			models.StatusCompleted, now, now.Add(window)).
		Find(&assignments).Error
	return assignments, err
}
