// question.go
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Question is static reference data: the text shown to the candidate, the
// Likert scale it is answered on, and its place in the domain/subdomain
// taxonomy. Administrators create and edit questions; the engine only reads
// them.
type Question struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	TestID        uint   `gorm:"index" json:"test_id"`
	Text          string `json:"text"`
	DomainID      uint   `gorm:"index" json:"domain_id"`
	DomainName    string `json:"domain_name"`
	SubdomainID   *uint  `gorm:"index" json:"subdomain_id,omitempty"`
	SubdomainName string `json:"subdomain_name,omitempty"`
	LikertPoints  int    `json:"likert_points"`
	IsReversed    bool   `json:"is_reversed"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Catalog mirrors the questions.yaml seed file used to bootstrap a test's
// question bank.
type Catalog struct {
	Tests []CatalogTest `yaml:"tests"`
}

type CatalogTest struct {
	ID        uint              `yaml:"id"`
	Name      string            `yaml:"name"`
	Questions []CatalogQuestion `yaml:"questions"`
}

type CatalogQuestion struct {
	ID            uint   `yaml:"id"`
	Text          string `yaml:"text"`
	DomainID      uint   `yaml:"domain_id"`
	DomainName    string `yaml:"domain_name"`
	SubdomainID   *uint  `yaml:"subdomain_id,omitempty"`
	SubdomainName string `yaml:"subdomain_name,omitempty"`
	LikertPoints  int    `yaml:"likert_points"`
	IsReversed    bool   `yaml:"is_reversed"`
}

// LoadCatalog reads and parses the questions.yaml seed file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog YAML: %w", err)
	}

	return &catalog, nil
}

// Questions flattens the catalog into persistable Question rows.
func (c *Catalog) Questions() []Question {
	var out []Question
	for _, t := range c.Tests {
		for _, q := range t.Questions {
			out = append(out, Question{
				ID:            q.ID,
				TestID:        t.ID,
				Text:          q.Text,
				DomainID:      q.DomainID,
				DomainName:    q.DomainName,
				SubdomainID:   q.SubdomainID,
				SubdomainName: q.SubdomainName,
				LikertPoints:  q.LikertPoints,
				IsReversed:    q.IsReversed,
			})
		}
	}
	return out
}
