// Package report aggregates per-creator results into run-level
// statistics and exports them.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/brandlens/brandlens/internal/models"
)

// Aggregate computes run-level statistics from completed creator
// reports. Counts always satisfy: official + matrix + ugc +
// nonBranded == totalProcessed and brandRelated + nonBrand ==
// totalProcessed.
func Aggregate(creators []models.CreatorReport) models.AggregateReport {
	agg := models.AggregateReport{
		TotalProcessed: len(creators),
		Brands:         make(map[string]models.BrandCounts),
	}

	for _, c := range creators {
		if c.Failed {
			agg.FailedCount++
		}

		switch c.Classification.AccountType {
		case models.AccountOfficial:
			agg.OfficialCount++
		case models.AccountMatrix:
			agg.MatrixCount++
		case models.AccountUGC:
			agg.UGCCount++
		default:
			agg.NonBrandedCount++
		}

		if c.IsBrandRelated {
			agg.BrandRelated++
		} else {
			agg.NonBrand++
		}

		if name := c.Classification.BrandName; c.IsBrandRelated && name != "" {
			counts := agg.Brands[name]
			switch c.Classification.AccountType {
			case models.AccountOfficial:
				counts.Official++
			case models.AccountMatrix:
				counts.Matrix++
			case models.AccountUGC:
				counts.UGC++
			}
			counts.Total++
			agg.Brands[name] = counts
		}
	}

	if agg.TotalProcessed > 0 {
		agg.BrandRelatedPct = float64(agg.BrandRelated) / float64(agg.TotalProcessed) * 100
		agg.NonBrandPct = float64(agg.NonBrand) / float64(agg.TotalProcessed) * 100
	}

	return agg
}

// Summary renders a human-readable run summary for notifications and
// logs.
func Summary(final models.FinalReport) string {
	var b strings.Builder

	agg := final.Aggregate
	fmt.Fprintf(&b, "Analysis run %s\n", final.RunID)
	if final.Partial {
		b.WriteString("Status: partial (deadline reached)\n")
	} else {
		b.WriteString("Status: complete\n")
	}
	fmt.Fprintf(&b, "Duration: %s\n", final.FinishedAt.Sub(final.StartedAt).Round(time.Second))
	fmt.Fprintf(&b, "Processed: %d creators (%d failed)\n", agg.TotalProcessed, agg.FailedCount)
	fmt.Fprintf(&b, "Brand related: %d (%.1f%%)\n", agg.BrandRelated, agg.BrandRelatedPct)
	fmt.Fprintf(&b, "Non brand: %d (%.1f%%)\n", agg.NonBrand, agg.NonBrandPct)
	fmt.Fprintf(&b, "Official: %d, Matrix: %d, UGC: %d, Non-branded: %d\n",
		agg.OfficialCount, agg.MatrixCount, agg.UGCCount, agg.NonBrandedCount)

	if len(agg.Brands) > 0 {
		fmt.Fprintf(&b, "Distinct brands: %d\n", len(agg.Brands))
	}

	return b.String()
}
