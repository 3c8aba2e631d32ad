package models

import (
	"time"

	"gorm.io/datatypes"
)

// ResultSnapshot is the score breakdown and activity analytics materialized
// once when an assignment completes. A retried submit never produces a second
// row; the repository guards the transition.
type ResultSnapshot struct {
	ID           uint           `gorm:"primaryKey"`
	AssignmentID uint           `gorm:"uniqueIndex"`
	Breakdown    datatypes.JSON `gorm:"type:jsonb"`
	Analytics    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time
}
