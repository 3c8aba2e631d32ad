// charts.go holds the raw-SQL history queries behind the dashboard charts.
package repository

import (
	"context"
	"time"

	"github.com/musama5293/NPI-Portal-sub003/internal/database"
)

type TimelineDataPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// scoreHistoryCTE flattens materialized result snapshots into one
// (completed_at, key, value) row per score so both the overall timeline and
// any single domain's timeline read from the same shape.
func scoreHistoryCTE() string {
	return `
	WITH score_history AS (
		SELECT
			a.candidate_id,
			a.end_time,
			'overall' AS score_key,
			(s.breakdown ->> 'overall_score')::float AS score_value
		FROM result_snapshots s
		JOIN test_assignments a ON s.assignment_id = a.id
		WHERE a.completion_status = 'completed'

		UNION ALL

		SELECT
			a.candidate_id,
			a.end_time,
			d.key AS score_key,
			d.value::float AS score_value
		FROM result_snapshots s
		JOIN test_assignments a ON s.assignment_id = a.id,
		LATERAL jsonb_each_text(s.breakdown -> 'domain_scores') AS d
		WHERE a.completion_status = 'completed'
	)
	`
}

// GetScoreTimeline returns a candidate's score history for one key
// ('overall' or a domain name), oldest first.
func GetScoreTimeline(ctx context.Context, candidateID uint, scoreKey string) ([]TimelineDataPoint, error) {
	var data []TimelineDataPoint

	query := scoreHistoryCTE() + `
		SELECT end_time AS date, score_value AS value
		FROM score_history
		WHERE candidate_id = ? AND score_key = ?
		ORDER BY end_time;
	`

	err := database.DB.WithContext(ctx).Raw(query, candidateID, scoreKey).Scan(&data).Error
	return data, err
}
