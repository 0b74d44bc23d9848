package models

import "errors"

// RecentPost is a single recent video fetched for a creator. Up to 20 recent
// posts are requested per creator; fewer (or none) may be returned.
type RecentPost struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	PlayCount  int64  `json:"play_count"`
	DiggCount  int64  `json:"digg_count"`
	ShareCount int64  `json:"share_count"`
	CreateTime int64  `json:"create_time"` // Unix epoch seconds; 0 when unknown
}

// Validate checks that all post counters are non-negative.
func (p *RecentPost) Validate() error {
	if p.PlayCount < 0 {
		return errors.New("play count must not be negative")
	}
	if p.DiggCount < 0 {
		return errors.New("digg count must not be negative")
	}
	if p.ShareCount < 0 {
		return errors.New("share count must not be negative")
	}
	if p.CreateTime < 0 {
		return errors.New("create time must not be negative")
	}
	return nil
}

// VideoMetrics holds statistics derived from a creator's recent posts.
// It is recomputed per analysis run and never persisted.
type VideoMetrics struct {
	AvgViews         float64 `json:"avg_views"`
	AvgLikes         float64 `json:"avg_likes"`
	AvgShares        float64 `json:"avg_shares"`
	PostingFrequency float64 `json:"posting_frequency"` // Posts per day across the observed span
	StabilityScore   float64 `json:"stability_score"`   // 1 - coefficient of variation of views, clamped to [0,1]
}

// Validate checks the metric ranges.
func (m *VideoMetrics) Validate() error {
	if m.AvgViews < 0 || m.AvgLikes < 0 || m.AvgShares < 0 {
		return errors.New("averages must not be negative")
	}
	if m.PostingFrequency < 0 {
		return errors.New("posting frequency must not be negative")
	}
	if m.StabilityScore < 0.0 || m.StabilityScore > 1.0 {
		return errors.New("stability score must be between 0.0 and 1.0")
	}
	return nil
}
