// Package metrics derives aggregate video statistics for a creator
// from their recent posts.
package metrics

import (
	"math"
	"sort"

	"github.com/brandlens/brandlens/internal/models"
)

const secondsPerDay = 86400

// Compute summarizes a creator's recent posts. It is a pure function;
// an empty input yields all-zero metrics.
func Compute(posts []models.RecentPost) models.VideoMetrics {
	if len(posts) == 0 {
		return models.VideoMetrics{}
	}

	var views, likes, shares float64
	for _, p := range posts {
		views += float64(p.PlayCount)
		likes += float64(p.DiggCount)
		shares += float64(p.ShareCount)
	}
	n := float64(len(posts))

	return models.VideoMetrics{
		AvgViews:         views / n,
		AvgLikes:         likes / n,
		AvgShares:        shares / n,
		PostingFrequency: postingFrequency(posts),
		StabilityScore:   stabilityScore(posts),
	}
}

// postingFrequency is posts per day over the time span of the posts
// carrying valid timestamps. Fewer than two valid timestamps yields 0.
func postingFrequency(posts []models.RecentPost) float64 {
	timestamps := make([]int64, 0, len(posts))
	for _, p := range posts {
		if p.CreateTime > 0 {
			timestamps = append(timestamps, p.CreateTime)
		}
	}
	if len(timestamps) < 2 {
		return 0
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

	spanDays := float64(timestamps[len(timestamps)-1]-timestamps[0]) / secondsPerDay
	if spanDays < 1 {
		spanDays = 1
	}
	return float64(len(posts)) / spanDays
}

// stabilityScore measures how consistent view counts are across posts.
// It is 1 minus the coefficient of variation of non-zero view counts,
// clamped to [0, 1]. Fewer than two non-zero samples yields 0.
func stabilityScore(posts []models.RecentPost) float64 {
	views := make([]float64, 0, len(posts))
	for _, p := range posts {
		if p.PlayCount > 0 {
			views = append(views, float64(p.PlayCount))
		}
	}
	if len(views) < 2 {
		return 0
	}

	var sum float64
	for _, v := range views {
		sum += v
	}
	mean := sum / float64(len(views))

	var variance float64
	for _, v := range views {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(views))

	cv := math.Sqrt(variance) / mean
	stability := 1 - cv
	if stability < 0 {
		return 0
	}
	if stability > 1 {
		return 1
	}
	return stability
}
