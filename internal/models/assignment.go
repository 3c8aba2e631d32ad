package models

import (
	"time"

	"github.com/lib/pq"
)

// CompletionStatus is the three-state lifecycle of a single candidate's or
// supervisor's attempt at a test. Transitions are monotonic:
// not_started -> started -> completed.
type CompletionStatus string

const (
	StatusNotStarted CompletionStatus = "not_started"
	StatusStarted    CompletionStatus = "started"
	StatusCompleted  CompletionStatus = "completed"
)

// TestAssignment binds a candidate (or a supervisor giving feedback) to a
// test with a scheduled/expiry availability window.
//
// Invariants maintained by the lifecycle package:
//   - EndTime is set iff CompletionStatus == completed
//   - StartTime is set iff CompletionStatus is started or completed
type TestAssignment struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	PublicID         string           `gorm:"uniqueIndex;size:36" json:"public_id"`
	CandidateID      *uint            `gorm:"index" json:"candidate_id,omitempty"`
	SupervisorID     *uint            `gorm:"index" json:"supervisor_id,omitempty"`
	TestID           uint             `gorm:"index" json:"test_id"`
	ScheduledDate    time.Time        `json:"scheduled_date"`
	ExpiryDate       time.Time        `json:"expiry_date"`
	CompletionStatus CompletionStatus `gorm:"size:16;default:not_started" json:"completion_status"`
	StartTime        *time.Time       `json:"start_time,omitempty"`
	EndTime          *time.Time       `json:"end_time,omitempty"`
	PageOrder        pq.Int64Array    `gorm:"type:integer[]" json:"page_order,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Answer is one candidate response to one question. There is exactly one row
// per (assignment, question); re-answering overwrites the previous value.
// Rows are frozen once the assignment completes.
type Answer struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	AssignmentID uint `gorm:"uniqueIndex:idx_assignment_question" json:"assignment_id"`
	QuestionID   uint `gorm:"uniqueIndex:idx_assignment_question" json:"question_id"`
	RawValue     int  `json:"raw_value"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
