package models

// SubdomainScore is one subdomain's rollup. DomainID is mandatory; consumers
// never have to guess the parent domain from the subdomain's name.
type SubdomainScore struct {
	SubdomainID   uint    `json:"subdomain_id"`
	SubdomainName string  `json:"subdomain_name"`
	Percentage    float64 `json:"percentage"`
	DomainID      uint    `json:"domain_id"`
}

// ScoreBreakdown is the hierarchical score rollup for one assignment:
// question -> subdomain -> domain -> overall, each level on a 0-100 scale.
// It is derived on demand from answers plus the question catalog and is never
// an input to anything.
//
// Domains and subdomains with zero answered questions are omitted entirely so
// that "not assessed" is distinguishable from "scored 0%".
type ScoreBreakdown struct {
	OverallScore    float64            `json:"overall_score"`
	DomainScores    map[string]float64 `json:"domain_scores"`
	SubdomainScores []SubdomainScore   `json:"subdomain_scores"`
	TotalQuestions  int                `json:"total_questions"`
	TotalAnswered   int                `json:"total_answered"`
}
