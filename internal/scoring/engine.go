// Package scoring converts raw Likert answers into the hierarchical score
// rollup: question -> subdomain -> domain -> overall. It is a pure function
// of its inputs: no clock, no storage, identical answers always produce
// identical output regardless of answer order.
package scoring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

// ErrInvalidQuestionScale is returned when a question declares a Likert scale
// of one point or fewer. A one-point scale has no range to map onto 0-100.
var ErrInvalidQuestionScale = errors.New("invalid question scale")

// ErrUnknownQuestion is returned when an answer references a question that is
// not in the supplied catalog subset.
var ErrUnknownQuestion = errors.New("answer references unknown question")

// group accumulates per-question percentages for one subdomain (or for the
// questions that sit directly under a domain with no subdomain).
type group struct {
	domainID      uint
	domainName    string
	subdomainID   uint
	subdomainName string
	direct        bool
	sum           float64
	count         int
}

// Score computes the breakdown for one assignment from its answers and the
// question catalog subset for its test.
//
// Rollup semantics, preserved intentionally:
//   - per-question percentage maps 1..N linearly onto 0-100
//   - a subdomain is the mean over its answered questions only
//   - a domain is the mean of its subdomain means, NOT a flat mean of all
//     underlying questions (this differs when subdomains have unequal
//     question counts)
//   - overall is the mean of domain means
//
// Unanswered questions are excluded rather than counted as zero, and groups
// with no answered questions are omitted so "not assessed" never reads as
// "scored 0%". Zero answers is not an error: the result simply reports
// TotalAnswered = 0 with empty maps.
func Score(answers []models.Answer, questions []models.Question) (*models.ScoreBreakdown, error) {
	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	groups := make(map[string]*group)

	for _, ans := range answers {
		q, ok := byID[ans.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: question %d", ErrUnknownQuestion, ans.QuestionID)
		}
		pct, err := QuestionPercentage(q.LikertPoints, q.IsReversed, ans.RawValue)
		if err != nil {
			return nil, err
		}

		g := groups[groupKey(q)]
		if g == nil {
			g = &group{
				domainID:      q.DomainID,
				domainName:    q.DomainName,
				subdomainName: q.SubdomainName,
				direct:        q.SubdomainID == nil,
			}
			if q.SubdomainID != nil {
				g.subdomainID = *q.SubdomainID
			}
			groups[groupKey(q)] = g
		}
		g.sum += pct
		g.count++
	}

	breakdown := &models.ScoreBreakdown{
		DomainScores:    map[string]float64{},
		SubdomainScores: []models.SubdomainScore{},
		TotalQuestions:  len(questions),
		TotalAnswered:   len(answers),
	}

	// Deterministic ordering: sort groups before folding them into domains.
	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].domainID != ordered[j].domainID {
			return ordered[i].domainID < ordered[j].domainID
		}
		return ordered[i].subdomainID < ordered[j].subdomainID
	})

	type domainAcc struct {
		name  string
		sum   float64
		count int
	}
	domainOrder := []uint{}
	domains := map[uint]*domainAcc{}

	for _, g := range ordered {
		mean := g.sum / float64(g.count)
		if !g.direct {
			breakdown.SubdomainScores = append(breakdown.SubdomainScores, models.SubdomainScore{
				SubdomainID:   g.subdomainID,
				SubdomainName: g.subdomainName,
				Percentage:    mean,
				DomainID:      g.domainID,
			})
		}
		d := domains[g.domainID]
		if d == nil {
			d = &domainAcc{name: g.domainName}
			domains[g.domainID] = d
			domainOrder = append(domainOrder, g.domainID)
		}
		d.sum += mean
		d.count++
	}

	var overallSum float64
	for _, id := range domainOrder {
		d := domains[id]
		mean := d.sum / float64(d.count)
		breakdown.DomainScores[d.name] = mean
		overallSum += mean
	}
	if len(domainOrder) > 0 {
		breakdown.OverallScore = overallSum / float64(len(domainOrder))
	}

	return breakdown, nil
}

// QuestionPercentage maps one raw Likert response onto 0-100, applying
// reverse scoring first. raw is clamped into [1, points] so a stray
// out-of-range client value cannot push a percentage outside the scale.
func QuestionPercentage(points int, reversed bool, raw int) (float64, error) {
	if points <= 1 {
		return 0, fmt.Errorf("%w: %d-point scale", ErrInvalidQuestionScale, points)
	}
	if raw < 1 {
		raw = 1
	}
	if raw > points {
		raw = points
	}
	normalized := raw
	if reversed {
		normalized = points + 1 - raw
	}
	return float64(normalized-1) / float64(points-1) * 100, nil
}

// groupKey buckets a question under its subdomain, or under a domain-direct
// bucket when it has no subdomain.
func groupKey(q models.Question) string {
	if q.SubdomainID == nil {
		return fmt.Sprintf("d%d", q.DomainID)
	}
	return fmt.Sprintf("d%d/s%d", q.DomainID, *q.SubdomainID)
}
