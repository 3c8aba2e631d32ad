package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityType enumerates the client-side events recorded during a sitting.
// The set is closed: the reducer rejects anything else so that a corrupted
// log surfaces instead of silently defaulting.
type ActivityType string

const (
	ActivityTestStart       ActivityType = "test_start"
	ActivityPageChange      ActivityType = "page_change"
	ActivityQuestionStart   ActivityType = "question_start"
	ActivityQuestionEnd     ActivityType = "question_end"
	ActivityOptionSelect    ActivityType = "option_select"
	ActivityFullscreenExit  ActivityType = "fullscreen_exit"
	ActivityFullscreenEnter ActivityType = "fullscreen_enter"
	ActivityTestSubmit      ActivityType = "test_submit"
)

// ActivityLogEntry is one timestamped client event. Entries are append-only,
// produced exclusively by the client while the assignment is started, and
// never mutated after being recorded. Timestamp is epoch milliseconds as
// reported by the client.
type ActivityLogEntry struct {
	ID           uint           `gorm:"primaryKey" json:"-"`
	AssignmentID uint           `gorm:"index:idx_activity_assignment_ts" json:"-"`
	ActivityType ActivityType   `gorm:"size:24" json:"activity_type"`
	Timestamp    float64        `gorm:"index:idx_activity_assignment_ts" json:"timestamp"`
	Data         datatypes.JSON `json:"data,omitempty"`
	CreatedAt    time.Time      `json:"-"`
}

// EventPayload is the union of the event-specific payloads carried in
// ActivityLogEntry.Data. Pointers distinguish "absent" from zero, since page
// and question indexes are 0-based.
type EventPayload struct {
	FromPage      *int `json:"from_page,omitempty"`
	ToPage        *int `json:"to_page,omitempty"`
	QuestionIndex *int `json:"question_index,omitempty"`
	Page          *int `json:"page,omitempty"`
	Answer        any  `json:"answer,omitempty"`
}

// QuestionTime aggregates dwell behaviour for a single question across all
// visits. TimeSpent is in seconds.
type QuestionTime struct {
	TimeSpent        float64 `json:"time_spent"`
	ViewCount        int     `json:"view_count"`
	NavigationEvents int     `json:"navigation_events"`
}

// ActivityAnalytics is derived from an assignment's ordered activity log.
// Durations are in seconds.
type ActivityAnalytics struct {
	TotalDuration        float64               `json:"totalDuration"`
	OffscreenTime        float64               `json:"offscreenTime"`
	FullscreenViolations int                   `json:"fullscreenViolations"`
	TotalPages           int                   `json:"totalPages"`
	QuestionTimes        map[int]*QuestionTime `json:"questionTimes"`
	TimingCounts         TimingCounts          `json:"timingCounts"`
	ActivityLog          []ActivityLogEntry    `json:"activityLog"`
}

// TimingCounts buckets resolved per-question dwell times for aggregate
// insights. Not a scoring input.
type TimingCounts struct {
	Fast   int `json:"fast"`
	Normal int `json:"normal"`
	Slow   int `json:"slow"`
}
