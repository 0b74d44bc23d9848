package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/brandlens/brandlens/internal/logger"
	"github.com/brandlens/brandlens/internal/models"
)

var csvHeader = []string{
	"video_id", "author_unique_id", "author_link", "signature",
	"account_type", "brand", "email", "recent_20_posts_views_avg",
	"recent_20_posts_like_avg", "recent_20_posts_share_avg",
	"posting_frequency", "stability_score", "brand_confidence",
	"analysis_details", "author_followers_count",
	"author_followings_count", "videoCount", "author_avatar",
	"create_times",
}

// WriteCSV exports creator reports into two files under outputDir:
// <baseName>_brand_related.csv and <baseName>_non_brand.csv.
func WriteCSV(outputDir, baseName string, creators []models.CreatorReport) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var brandRelated, nonBrand []models.CreatorReport
	for _, c := range creators {
		if c.IsBrandRelated {
			brandRelated = append(brandRelated, c)
		} else {
			nonBrand = append(nonBrand, c)
		}
	}

	brandFile := filepath.Join(outputDir, baseName+"_brand_related.csv")
	nonBrandFile := filepath.Join(outputDir, baseName+"_non_brand.csv")

	if err := writeFile(brandFile, brandRelated); err != nil {
		return err
	}
	if err := writeFile(nonBrandFile, nonBrand); err != nil {
		return err
	}

	logger.Info("Saved %d brand related and %d non brand creators to %s", len(brandRelated), len(nonBrand), outputDir)
	return nil
}

func writeFile(path string, creators []models.CreatorReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, c := range creators {
		if err := w.Write(row(c)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", c.Identity.Handle, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func row(c models.CreatorReport) []string {
	return []string{
		c.Identity.SourceVideoID,
		c.Identity.Handle,
		c.ProfileURL,
		c.Profile.Signature,
		string(c.Classification.AccountType),
		c.Classification.BrandName,
		c.Email,
		formatFloat(c.Metrics.AvgViews),
		formatFloat(c.Metrics.AvgLikes),
		formatFloat(c.Metrics.AvgShares),
		formatFloat(c.Metrics.PostingFrequency),
		formatFloat(c.Metrics.StabilityScore),
		formatFloat(c.Classification.Confidence),
		c.Classification.Rationale,
		strconv.Itoa(c.Profile.FollowerCount),
		strconv.Itoa(c.Profile.FollowingCount),
		strconv.Itoa(c.Profile.VideoCount),
		c.Profile.AvatarURL,
		c.FirstSeenDate,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
