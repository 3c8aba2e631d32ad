package activity

import (
	"errors"
	"fmt"

	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

// ErrUnknownActivityType is returned when a log entry carries an activity
// type outside the closed enumeration. Classification fails closed so that
// log corruption surfaces instead of rendering with a silent default.
var ErrUnknownActivityType = errors.New("unknown activity type")

// Classification is the fixed display tag for one activity type. It is used
// purely for rendering the timeline and never feeds scoring.
type Classification struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Severity string `json:"severity"`
}

var classifications = map[models.ActivityType]Classification{
	models.ActivityTestStart:       {Label: "Test Started", Color: "#2e7d32", Severity: "info"},
	models.ActivityPageChange:      {Label: "Page Change", Color: "#1565c0", Severity: "info"},
	models.ActivityQuestionStart:   {Label: "Question Opened", Color: "#1565c0", Severity: "info"},
	models.ActivityQuestionEnd:     {Label: "Question Closed", Color: "#1565c0", Severity: "info"},
	models.ActivityOptionSelect:    {Label: "Option Selected", Color: "#6a1b9a", Severity: "info"},
	models.ActivityFullscreenExit:  {Label: "Left Fullscreen", Color: "#c62828", Severity: "violation"},
	models.ActivityFullscreenEnter: {Label: "Returned to Fullscreen", Color: "#ef6c00", Severity: "warning"},
	models.ActivityTestSubmit:      {Label: "Test Submitted", Color: "#2e7d32", Severity: "info"},
}

// Classify resolves the display tag for an activity type.
func Classify(t models.ActivityType) (Classification, error) {
	c, ok := classifications[t]
	if !ok {
		return Classification{}, fmt.Errorf("%w: %q", ErrUnknownActivityType, t)
	}
	return c, nil
}

// Timing buckets for a question's resolved dwell time, in seconds. Inclusive
// lower bound, exclusive upper: [0,10) fast, [10,30) normal, [30,∞) slow.
const (
	fastUpperSeconds   = 10
	normalUpperSeconds = 30
)

// TimingBucket classifies a per-question time_spent for aggregate insight
// counts.
func TimingBucket(seconds float64) string {
	switch {
	case seconds < fastUpperSeconds:
		return "fast"
	case seconds < normalUpperSeconds:
		return "normal"
	default:
		return "slow"
	}
}
