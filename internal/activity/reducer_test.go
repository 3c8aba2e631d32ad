package activity

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/musama5293/NPI-Portal-sub003/internal/models"

	"gorm.io/datatypes"
)

func entry(t models.ActivityType, ts float64, data any) models.ActivityLogEntry {
	e := models.ActivityLogEntry{ActivityType: t, Timestamp: ts}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			panic(err)
		}
		e.Data = datatypes.JSON(raw)
	}
	return e
}

func questionStart(ts float64, idx int) models.ActivityLogEntry {
	return entry(models.ActivityQuestionStart, ts, map[string]int{"question_index": idx})
}

func questionEnd(ts float64, idx int) models.ActivityLogEntry {
	return entry(models.ActivityQuestionEnd, ts, map[string]int{"question_index": idx})
}

func pageChange(ts float64, from, to int) models.ActivityLogEntry {
	return entry(models.ActivityPageChange, ts, map[string]int{"from_page": from, "to_page": to})
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestReduceSingleTestStart(t *testing.T) {
	analytics, err := Reduce([]models.ActivityLogEntry{
		entry(models.ActivityTestStart, 1000, nil),
	})
	if err != nil {
		t.Fatal(err)
	}
	if analytics.TotalDuration != 0 {
		t.Errorf("TotalDuration = %v, want 0", analytics.TotalDuration)
	}
	if analytics.FullscreenViolations != 0 {
		t.Errorf("FullscreenViolations = %d, want 0", analytics.FullscreenViolations)
	}
	if len(analytics.QuestionTimes) != 0 {
		t.Errorf("QuestionTimes = %v, want empty", analytics.QuestionTimes)
	}
	if analytics.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", analytics.TotalPages)
	}
}

func TestReduceRejectsEmptyLog(t *testing.T) {
	if _, err := Reduce(nil); !errors.Is(err, ErrMalformedLog) {
		t.Errorf("got %v, want ErrMalformedLog", err)
	}
}

func TestReduceRejectsMissingTestStart(t *testing.T) {
	_, err := Reduce([]models.ActivityLogEntry{
		questionStart(1000, 0),
		entry(models.ActivityTestSubmit, 2000, nil),
	})
	if !errors.Is(err, ErrMalformedLog) {
		t.Errorf("got %v, want ErrMalformedLog", err)
	}
}

func TestReduceRejectsOutOfOrderTimestamps(t *testing.T) {
	_, err := Reduce([]models.ActivityLogEntry{
		entry(models.ActivityTestStart, 5000, nil),
		questionStart(1000, 0),
	})
	if !errors.Is(err, ErrMalformedLog) {
		t.Errorf("got %v, want ErrMalformedLog", err)
	}
}

func TestReduceRejectsUnknownActivityType(t *testing.T) {
	_, err := Reduce([]models.ActivityLogEntry{
		entry(models.ActivityTestStart, 0, nil),
		entry(models.ActivityType("mystery_event"), 1000, nil),
	})
	if !errors.Is(err, ErrUnknownActivityType) {
		t.Errorf("got %v, want ErrUnknownActivityType", err)
	}
}

func TestReduceDanglingFullscreenExit(t *testing.T) {
	analytics, err := Reduce([]models.ActivityLogEntry{
		entry(models.ActivityTestStart, 0, nil),
		entry(models.ActivityFullscreenExit, 1000, nil),
		entry(models.ActivityTestSubmit, 5000, nil),
	})
	if err != nil {
		t.Fatal(err)
	}
	if analytics.FullscreenViolations != 1 {
		t.Errorf("FullscreenViolations = %d, want 1", analytics.FullscreenViolations)
	}
	// No matching enter: offscreen runs until the final timestamp.
	if !near(analytics.OffscreenTime, 4) {
		t.Errorf("OffscreenTime = %v, want 4", analytics.OffscreenTime)
	}
}

func TestReducePairedFullscreenInterval(t *testing.T) {
	analytics, err := Reduce([]models.ActivityLogEntry{
		entry(models.ActivityTestStart, 0, nil),
		entry(models.ActivityFullscreenExit, 1000, nil),
		entry(models.ActivityFullscreenEnter, 3000, nil),
		entry(models.ActivityTestSubmit, 10000, nil),
	})
	if err != nil {
		t.Fatal(err)
	}
	if analytics.FullscreenViolations != 1 {
		t.Errorf("FullscreenViolations = %d, want 1", analytics.FullscreenViolations)
	}
	if !near(analytics.OffscreenTime, 2) {
		t.Errorf("OffscreenTime = %v, want 2", analytics.OffscreenTime)
	}
	if !near(analytics.TotalDuration, 10) {
		t.Errorf("TotalDuration = %v, want 10", analytics.TotalDuration)
	}
}

// Revisiting a question accumulates dwell time across visits and counts each
// visit, rather than keeping only the latest interval.
func TestReduceAccumulatesDwellAcrossRevisits(t *testing.T) {
	analytics, err := Reduce([]models.ActivityLogEntry{
		entry(models.ActivityTestStart, 0, nil),
		questionStart(1000, 7),
		questionStart(4000, 8), // closes q7 at 3s
		questionStart(6000, 7), // closes q8 at 2s, reopens q7
		entry(models.ActivityTestSubmit, 9000, nil), // closes q7 at 3s more
	})
	if err != nil {
		t.Fatal(err)
	}

	q7 := analytics.QuestionTimes[7]
	if q7 == nil {
		t.Fatal("no dwell record for question 7")
	}
	if !near(q7.TimeSpent, 6) {
		t.Errorf("q7 TimeSpent = %v, want 6 (sum of both visits)", q7.TimeSpent)
	}
	if q7.ViewCount != 2 {
		t.Errorf("q7 ViewCount = %d, want 2", q7.ViewCount)
	}

	q8 := analytics.QuestionTimes[8]
	if q8 == nil || !near(q8.TimeSpent, 2) || q8.ViewCount != 1 {
		t.Errorf("q8 = %+v, want 2s over one visit", q8)
	}
}

func TestReduceQuestionEndClosesInterval(t *testing.T) {
	analytics, err := Reduce([]models.ActivityLogEntry{
		entry(models.ActivityTestStart, 0, nil),
		questionStart(1000, 3),
		questionEnd(3000, 3),
		entry(models.ActivityTestSubmit, 60000, nil),
	})
	if err != nil {
		t.Fatal(err)
	}
	q3 := analytics.QuestionTimes[3]
	if q3 == nil || !near(q3.TimeSpent, 2) {
		t.Errorf("q3 = %+v, want 2s (interval closed by question_end, not submit)", q3)
	}
}

func TestReduceTotalPages(t *testing.T) {
	analytics, err := Reduce([]models.ActivityLogEntry{
		entry(models.ActivityTestStart, 0, nil),
		pageChange(1000, 0, 1),
		pageChange(2000, 1, 3),
		pageChange(3000, 3, 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	if analytics.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4 (highest 0-indexed to_page + 1)", analytics.TotalPages)
	}
}

func TestReduceIsDeterministicAndDoesNotMutateInput(t *testing.T) {
	log := []models.ActivityLogEntry{
		entry(models.ActivityTestStart, 0, nil),
		questionStart(500, 0),
		entry(models.ActivityOptionSelect, 700, map[string]int{"answer": 4}),
		pageChange(1000, 0, 1),
		entry(models.ActivityFullscreenExit, 1500, nil),
		entry(models.ActivityFullscreenEnter, 2500, nil),
		entry(models.ActivityTestSubmit, 3000, nil),
	}
	snapshot := make([]models.ActivityLogEntry, len(log))
	copy(snapshot, log)

	first, err := Reduce(log)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Reduce(log)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("re-running the reducer over the same log produced different analytics")
	}
	if !reflect.DeepEqual(log, snapshot) {
		t.Error("reducer mutated its input log")
	}
}
