// Package lifecycle governs when a test assignment may be started, resumed
// or completed. Transitions are monotonic (not_started -> started ->
// completed); everything here is a pure function of the assignment and a
// caller-supplied clock so handlers and tests share identical behaviour.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

// ErrInvalidTransition is returned when a start/complete is attempted from a
// state that does not allow it. It is recoverable: the caller surfaces it as
// a rejected action, nothing else changes.
var ErrInvalidTransition = errors.New("invalid assignment transition")

// Urgency tiers the remaining availability window for UI and alerting.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyWarning  Urgency = "warning"
	UrgencyNormal   Urgency = "normal"
	UrgencyExpired  Urgency = "expired"
)

// IsAvailable reports whether the assignment can currently accept a start or
// resume. The window is inclusive at both ends. A completed assignment is
// never available (it stays viewable read-only), and an expired one is
// permanently inaccessible regardless of status.
func IsAvailable(a *models.TestAssignment, now time.Time) bool {
	if a.CompletionStatus == models.StatusCompleted {
		return false
	}
	return !now.Before(a.ScheduledDate) && !now.After(a.ExpiryDate)
}

// Start moves the assignment into the started state. Resuming an
// already-started assignment is a no-op that keeps the original StartTime.
func Start(a *models.TestAssignment, now time.Time) error {
	if !IsAvailable(a, now) {
		return fmt.Errorf("%w: cannot start %s assignment outside its window", ErrInvalidTransition, a.CompletionStatus)
	}
	a.CompletionStatus = models.StatusStarted
	if a.StartTime == nil {
		t := now
		a.StartTime = &t
	}
	return nil
}

// Complete moves a started assignment to completed and stamps EndTime. A
// duplicate complete (retried network request) is a no-op so a retry can
// never produce two scoring runs with different end times.
func Complete(a *models.TestAssignment, now time.Time) error {
	switch a.CompletionStatus {
	case models.StatusCompleted:
		return nil
	case models.StatusStarted:
		a.CompletionStatus = models.StatusCompleted
		t := now
		a.EndTime = &t
		return nil
	default:
		return fmt.Errorf("%w: cannot complete assignment in state %s", ErrInvalidTransition, a.CompletionStatus)
	}
}

// TimeRemaining is the duration until the expiry date. Negative means the
// assignment has expired.
func TimeRemaining(a *models.TestAssignment, now time.Time) time.Duration {
	return a.ExpiryDate.Sub(now)
}

// Tier classifies remaining time for display. Strictly less-than on both
// boundaries: exactly 1 day remaining is a warning, exactly 3 days is normal.
func Tier(remaining time.Duration) Urgency {
	switch {
	case remaining < 0:
		return UrgencyExpired
	case remaining < 24*time.Hour:
		return UrgencyCritical
	case remaining < 72*time.Hour:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
