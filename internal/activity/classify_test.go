package activity

import (
	"errors"
	"testing"

	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

func TestClassifyCoversWholeEnumeration(t *testing.T) {
	types := []models.ActivityType{
		models.ActivityTestStart,
		models.ActivityPageChange,
		models.ActivityQuestionStart,
		models.ActivityQuestionEnd,
		models.ActivityOptionSelect,
		models.ActivityFullscreenExit,
		models.ActivityFullscreenEnter,
		models.ActivityTestSubmit,
	}
	for _, typ := range types {
		tag, err := Classify(typ)
		if err != nil {
			t.Errorf("Classify(%q) returned error: %v", typ, err)
		}
		if tag.Color == "" || tag.Severity == "" {
			t.Errorf("Classify(%q) returned incomplete tag %+v", typ, tag)
		}
	}
}

func TestClassifyFailsClosed(t *testing.T) {
	for _, typ := range []models.ActivityType{"", "tab_switch", "TEST_START"} {
		if _, err := Classify(typ); !errors.Is(err, ErrUnknownActivityType) {
			t.Errorf("Classify(%q): got %v, want ErrUnknownActivityType", typ, err)
		}
	}
}

func TestClassifyViolationSeverity(t *testing.T) {
	tag, err := Classify(models.ActivityFullscreenExit)
	if err != nil {
		t.Fatal(err)
	}
	if tag.Severity != "violation" {
		t.Errorf("fullscreen_exit severity = %q, want violation", tag.Severity)
	}
}

func TestTimingBucketBoundaries(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "fast"},
		{9.999, "fast"},
		{10, "normal"}, // inclusive lower bound
		{29.999, "normal"},
		{30, "slow"}, // exclusive upper bound
		{300, "slow"},
	}
	for _, c := range cases {
		if got := TimingBucket(c.seconds); got != c.want {
			t.Errorf("TimingBucket(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}
