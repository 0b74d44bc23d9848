package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/brandlens/brandlens/internal/models"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"run-42", "run\\-42"},
		{"50.0%", "50\\.0%"},
		{"a_b*c", "a\\_b\\*c"},
		{"[link](url)", "\\[link\\]\\(url\\)"},
		{"", ""},
	}

	for _, tt := range tests {
		result := escapeMarkdownV2(tt.input)
		if result != tt.expected {
			t.Errorf("escapeMarkdownV2(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestFormatSummary(t *testing.T) {
	started := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	final := &models.FinalReport{
		RunID:      "run-42",
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Partial:    false,
		Aggregate: models.AggregateReport{
			TotalProcessed:  4,
			OfficialCount:   1,
			MatrixCount:     1,
			UGCCount:        0,
			NonBrandedCount: 2,
			BrandRelated:    2,
			NonBrand:        2,
			BrandRelatedPct: 50.0,
			NonBrandPct:     50.0,
			Brands: map[string]models.BrandCounts{
				"Nike": {Official: 1},
			},
		},
	}

	message := formatSummary(final)

	for _, want := range []string{
		"run\\-42",
		"✅ complete",
		"1m30s",
		"*4* creators",
		"Distinct brands: 1",
	} {
		if !strings.Contains(message, want) {
			t.Errorf("summary missing %q:\n%s", want, message)
		}
	}

	final.Partial = true
	message = formatSummary(final)
	if !strings.Contains(message, "partial") {
		t.Errorf("partial run summary missing status:\n%s", message)
	}
}
