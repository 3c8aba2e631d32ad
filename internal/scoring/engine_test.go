package scoring

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

func question(id, domainID uint, domainName string, subdomainID uint, subdomainName string, points int, reversed bool) models.Question {
	q := models.Question{
		ID:           id,
		DomainID:     domainID,
		DomainName:   domainName,
		LikertPoints: points,
		IsReversed:   reversed,
	}
	if subdomainID != 0 {
		sid := subdomainID
		q.SubdomainID = &sid
		q.SubdomainName = subdomainName
	}
	return q
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuestionPercentage(t *testing.T) {
	cases := []struct {
		points   int
		reversed bool
		raw      int
		want     float64
	}{
		{5, false, 3, 50},
		{5, true, 3, 50},
		{5, true, 1, 100},
		{5, false, 1, 0},
		{5, false, 5, 100},
		{7, false, 4, 50},
		{7, true, 7, 0},
	}
	for _, c := range cases {
		got, err := QuestionPercentage(c.points, c.reversed, c.raw)
		if err != nil {
			t.Fatalf("QuestionPercentage(%d,%v,%d) returned error: %v", c.points, c.reversed, c.raw, err)
		}
		if !almostEqual(got, c.want) {
			t.Errorf("QuestionPercentage(%d,%v,%d)=%v, want %v", c.points, c.reversed, c.raw, got, c.want)
		}
	}
}

func TestQuestionPercentageRejectsDegenerateScale(t *testing.T) {
	for _, points := range []int{1, 0, -3} {
		if _, err := QuestionPercentage(points, false, 1); !errors.Is(err, ErrInvalidQuestionScale) {
			t.Errorf("points=%d: got %v, want ErrInvalidQuestionScale", points, err)
		}
	}
}

// Reversing a response and mirroring its raw value about the scale midpoint
// must land on the same percentage.
func TestReverseScoringSymmetry(t *testing.T) {
	for _, points := range []int{5, 7} {
		for raw := 1; raw <= points; raw++ {
			direct, err := QuestionPercentage(points, false, raw)
			if err != nil {
				t.Fatal(err)
			}
			mirrored, err := QuestionPercentage(points, true, points+1-raw)
			if err != nil {
				t.Fatal(err)
			}
			if !almostEqual(direct, mirrored) {
				t.Errorf("points=%d raw=%d: direct %v != mirrored %v", points, raw, direct, mirrored)
			}
		}
	}
}

func TestScoreIsOrderInsensitive(t *testing.T) {
	questions := []models.Question{
		question(1, 1, "Stability", 11, "Stress", 5, false),
		question(2, 1, "Stability", 11, "Stress", 5, true),
		question(3, 2, "Diligence", 21, "Focus", 7, false),
	}
	answers := []models.Answer{
		{QuestionID: 1, RawValue: 4},
		{QuestionID: 2, RawValue: 2},
		{QuestionID: 3, RawValue: 6},
	}
	reversed := []models.Answer{answers[2], answers[0], answers[1]}

	a, err := Score(answers, questions)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Score(reversed, questions)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("breakdowns differ by answer order:\n%+v\n%+v", a, b)
	}
}

// Domain rollup is a mean of subdomain means. With one subdomain holding a
// single 100% answer and another holding three 0% answers, the domain must
// read 50, not the flat per-question mean of 25.
func TestDomainIsMeanOfSubdomainMeans(t *testing.T) {
	questions := []models.Question{
		question(1, 1, "Stability", 11, "Stress", 5, false),
		question(2, 1, "Stability", 12, "Resilience", 5, false),
		question(3, 1, "Stability", 12, "Resilience", 5, false),
		question(4, 1, "Stability", 12, "Resilience", 5, false),
	}
	answers := []models.Answer{
		{QuestionID: 1, RawValue: 5}, // 100%
		{QuestionID: 2, RawValue: 1}, // 0%
		{QuestionID: 3, RawValue: 1},
		{QuestionID: 4, RawValue: 1},
	}

	breakdown, err := Score(answers, questions)
	if err != nil {
		t.Fatal(err)
	}
	if got := breakdown.DomainScores["Stability"]; !almostEqual(got, 50) {
		t.Errorf("domain score = %v, want 50 (mean of subdomain means)", got)
	}
	if !almostEqual(breakdown.OverallScore, 50) {
		t.Errorf("overall = %v, want 50", breakdown.OverallScore)
	}
}

func TestScoreWithNoAnswers(t *testing.T) {
	questions := []models.Question{
		question(1, 1, "Stability", 11, "Stress", 5, false),
	}

	breakdown, err := Score(nil, questions)
	if err != nil {
		t.Fatal(err)
	}
	if breakdown.TotalAnswered != 0 {
		t.Errorf("TotalAnswered = %d, want 0", breakdown.TotalAnswered)
	}
	if breakdown.TotalQuestions != 1 {
		t.Errorf("TotalQuestions = %d, want 1", breakdown.TotalQuestions)
	}
	if breakdown.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want 0", breakdown.OverallScore)
	}
	if len(breakdown.DomainScores) != 0 || len(breakdown.SubdomainScores) != 0 {
		t.Errorf("expected empty maps for zero answers, got %+v", breakdown)
	}
}

// A domain or subdomain with no answered questions is omitted entirely so
// "not assessed" cannot be confused with "scored 0%".
func TestUnassessedGroupsAreOmitted(t *testing.T) {
	questions := []models.Question{
		question(1, 1, "Stability", 11, "Stress", 5, false),
		question(2, 2, "Teamwork", 21, "Collaboration", 5, false),
	}
	answers := []models.Answer{{QuestionID: 1, RawValue: 1}} // 0% on Stability

	breakdown, err := Score(answers, questions)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := breakdown.DomainScores["Stability"]; !ok {
		t.Error("answered domain missing from DomainScores")
	}
	if _, ok := breakdown.DomainScores["Teamwork"]; ok {
		t.Error("unassessed domain should be omitted, not reported as 0")
	}
	if len(breakdown.SubdomainScores) != 1 {
		t.Fatalf("SubdomainScores = %+v, want exactly the assessed one", breakdown.SubdomainScores)
	}
	if breakdown.SubdomainScores[0].DomainID != 1 {
		t.Error("subdomain score must carry its domain_id")
	}
}

// Questions with no subdomain roll straight into the domain mean but never
// appear in the subdomain list.
func TestDomainDirectQuestions(t *testing.T) {
	questions := []models.Question{
		question(1, 1, "Stability", 11, "Stress", 5, false),
		question(2, 1, "Stability", 0, "", 5, false), // no subdomain
	}
	answers := []models.Answer{
		{QuestionID: 1, RawValue: 5}, // 100%
		{QuestionID: 2, RawValue: 1}, // 0%
	}

	breakdown, err := Score(answers, questions)
	if err != nil {
		t.Fatal(err)
	}
	if got := breakdown.DomainScores["Stability"]; !almostEqual(got, 50) {
		t.Errorf("domain score = %v, want 50", got)
	}
	if len(breakdown.SubdomainScores) != 1 {
		t.Errorf("SubdomainScores = %+v, want only the named subdomain", breakdown.SubdomainScores)
	}
}

func TestScoreRejectsUnknownQuestion(t *testing.T) {
	answers := []models.Answer{{QuestionID: 99, RawValue: 3}}
	if _, err := Score(answers, nil); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("got %v, want ErrUnknownQuestion", err)
	}
}
