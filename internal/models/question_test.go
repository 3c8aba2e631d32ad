package models

import (
	"os"
	"path/filepath"
	"testing"
)

const catalogFixture = `tests:
  - id: 1
    name: "Sample Inventory"
    questions:
      - id: 1
        text: "First question"
        domain_id: 1
        domain_name: "Stability"
        subdomain_id: 11
        subdomain_name: "Stress"
        likert_points: 5
      - id: 2
        text: "Second question"
        domain_id: 1
        domain_name: "Stability"
        likert_points: 7
        is_reversed: true
`

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(catalogFixture), 0644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}

	questions := catalog.Questions()
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}

	first := questions[0]
	if first.TestID != 1 || first.DomainID != 1 || first.LikertPoints != 5 {
		t.Errorf("unexpected first question: %+v", first)
	}
	if first.SubdomainID == nil || *first.SubdomainID != 11 {
		t.Errorf("first question subdomain = %v, want 11", first.SubdomainID)
	}

	second := questions[1]
	if !second.IsReversed {
		t.Error("second question should be reverse-scored")
	}
	if second.SubdomainID != nil {
		t.Errorf("second question subdomain = %v, want none", second.SubdomainID)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing catalog file")
	}
}
