// Package activity reconstructs behavioural analytics from the flat,
// timestamped event log the client records during a sitting: total duration,
// per-question dwell time across revisits, fullscreen-exit violations with
// paired offscreen intervals, and page coverage.
//
// The reducer is synchronous and pure: it assumes entries are pre-sorted by
// timestamp, never mutates its input, and re-running it over the same log is
// deterministic. Out-of-order input is rejected rather than silently fixed.
package activity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

// ErrMalformedLog is returned for a log the reducer refuses to interpret:
// empty, missing its test_start entry, out-of-order timestamps, or an
// undecodable event payload. Producing misleading analytics would be worse
// than failing.
var ErrMalformedLog = errors.New("malformed activity log")

// Reduce folds an ordered activity log into aggregate analytics. The input
// slice is retained (not copied) in the result's ActivityLog for timeline
// display but is never modified.
func Reduce(entries []models.ActivityLogEntry) (*models.ActivityAnalytics, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty log", ErrMalformedLog)
	}

	analytics := &models.ActivityAnalytics{
		QuestionTimes: map[int]*models.QuestionTime{},
		TotalPages:    1,
		ActivityLog:   entries,
	}

	var (
		testStartAt   float64
		haveTestStart bool
		maxPage       = -1

		// open dwell interval
		openQuestion int
		openSince    float64
		haveOpen     bool

		// open offscreen interval
		offscreenSince float64
		haveOffscreen  bool
	)

	prev := entries[0].Timestamp
	for i, e := range entries {
		if e.Timestamp < prev {
			return nil, fmt.Errorf("%w: timestamps out of order at entry %d", ErrMalformedLog, i)
		}
		prev = e.Timestamp

		// Fail closed on types outside the enumeration before doing any math.
		if _, err := Classify(e.ActivityType); err != nil {
			return nil, err
		}

		payload, err := decodePayload(e)
		if err != nil {
			return nil, err
		}

		switch e.ActivityType {
		case models.ActivityTestStart:
			if !haveTestStart {
				testStartAt = e.Timestamp
				haveTestStart = true
			}

		case models.ActivityPageChange:
			if payload.ToPage != nil && *payload.ToPage > maxPage {
				maxPage = *payload.ToPage
			}

		case models.ActivityQuestionStart:
			if payload.QuestionIndex == nil {
				return nil, fmt.Errorf("%w: question_start without question_index at entry %d", ErrMalformedLog, i)
			}
			idx := *payload.QuestionIndex
			if haveOpen {
				accumulate(analytics, openQuestion, e.Timestamp-openSince)
			}
			qt := questionTime(analytics, idx)
			qt.ViewCount++
			qt.NavigationEvents++
			openQuestion = idx
			openSince = e.Timestamp
			haveOpen = true

		case models.ActivityQuestionEnd:
			if payload.QuestionIndex == nil {
				return nil, fmt.Errorf("%w: question_end without question_index at entry %d", ErrMalformedLog, i)
			}
			idx := *payload.QuestionIndex
			questionTime(analytics, idx).NavigationEvents++
			// A question_end for an interval already closed by a later
			// question_start is tolerated; only a matching open one closes.
			if haveOpen && openQuestion == idx {
				accumulate(analytics, idx, e.Timestamp-openSince)
				haveOpen = false
			}

		case models.ActivityFullscreenExit:
			analytics.FullscreenViolations++
			if haveOffscreen {
				analytics.OffscreenTime += toSeconds(e.Timestamp - offscreenSince)
			}
			offscreenSince = e.Timestamp
			haveOffscreen = true

		case models.ActivityFullscreenEnter:
			if haveOffscreen {
				analytics.OffscreenTime += toSeconds(e.Timestamp - offscreenSince)
				haveOffscreen = false
			}

		case models.ActivityOptionSelect, models.ActivityTestSubmit:
			// No running state; both are retained in the timeline.
		}
	}

	if !haveTestStart {
		return nil, fmt.Errorf("%w: no test_start entry", ErrMalformedLog)
	}

	last := entries[len(entries)-1].Timestamp
	analytics.TotalDuration = toSeconds(last - testStartAt)

	// End of log closes any dangling interval implicitly: a candidate who
	// left fullscreen and never came back was offscreen until the last
	// recorded moment, and an open question accrued dwell until then too.
	if haveOffscreen {
		analytics.OffscreenTime += toSeconds(last - offscreenSince)
	}
	if haveOpen {
		accumulate(analytics, openQuestion, last-openSince)
	}

	if maxPage >= 0 {
		analytics.TotalPages = maxPage + 1
	}

	for _, qt := range analytics.QuestionTimes {
		switch TimingBucket(qt.TimeSpent) {
		case "fast":
			analytics.TimingCounts.Fast++
		case "normal":
			analytics.TimingCounts.Normal++
		default:
			analytics.TimingCounts.Slow++
		}
	}

	return analytics, nil
}

func decodePayload(e models.ActivityLogEntry) (*models.EventPayload, error) {
	payload := &models.EventPayload{}
	if len(e.Data) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(e.Data, payload); err != nil {
		return nil, fmt.Errorf("%w: undecodable %s payload: %v", ErrMalformedLog, e.ActivityType, err)
	}
	return payload, nil
}

func questionTime(a *models.ActivityAnalytics, idx int) *models.QuestionTime {
	qt := a.QuestionTimes[idx]
	if qt == nil {
		qt = &models.QuestionTime{}
		a.QuestionTimes[idx] = qt
	}
	return qt
}

// accumulate adds one closed dwell interval (milliseconds) to a question.
// Durations accumulate across revisits rather than keeping only the last.
func accumulate(a *models.ActivityAnalytics, idx int, millis float64) {
	questionTime(a, idx).TimeSpent += toSeconds(millis)
}

func toSeconds(millis float64) float64 {
	return millis / 1000
}
