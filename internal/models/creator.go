// Package models defines the core domain entities for the brandlens application.
// These models represent creator identities, enriched profile data, derived video
// metrics, and brand-relationship classification results.
// All models include built-in validation to ensure data integrity throughout the
// analysis pipeline.
//
// Terminology:
//   - Handle: the unique public username of a creator account.
//   - Matrix account: an account representing a specific business/brand without
//     being that brand's primary/official account (a local franchise, a shop
//     employee, a regional representative).
//   - UGC creator: an independent creator, possibly with a disclosed commercial
//     partnership.
package models

import (
	"errors"
	"strings"
)

// CreatorIdentity is the canonical identity extracted from the first raw input
// record seen for a handle. It is immutable after extraction; duplicate rows
// for the same handle are dropped, not merged.
type CreatorIdentity struct {
	Handle           string `json:"handle"`             // Unique creator username, trimmed, never "None"
	DisplayName      string `json:"display_name"`       // Nickname/display name from the source record
	SourceVideoID    string `json:"source_video_id"`    // Video that surfaced this creator
	SourceTitle      string `json:"source_title"`       // Title of that video
	SourceCreateTime string `json:"source_create_time"` // Raw create-time value from the source record
	RawSignature     string `json:"raw_signature"`      // Bio/description carried on the input record, if any
}

// Validate checks that the identity satisfies the extraction invariants.
func (c *CreatorIdentity) Validate() error {
	if c.Handle == "" {
		return errors.New("handle must not be empty")
	}
	if c.Handle != strings.TrimSpace(c.Handle) {
		return errors.New("handle must be trimmed")
	}
	if c.Handle == "None" {
		return errors.New("handle must not be the sentinel \"None\"")
	}
	return nil
}

// ProfileSnapshot holds profile attributes fetched from the external lookup
// service. The zero value is the defined result of a failed or empty lookup;
// callers must tolerate it silently and cannot distinguish "not found" from
// "lookup failed".
type ProfileSnapshot struct {
	Handle         string `json:"handle"`
	Signature      string `json:"signature"` // Bio text
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	VideoCount     int    `json:"video_count"`
	AvatarURL      string `json:"avatar_url"`
}

// Validate checks that all snapshot counters are non-negative.
func (p *ProfileSnapshot) Validate() error {
	if p.FollowerCount < 0 {
		return errors.New("follower count must not be negative")
	}
	if p.FollowingCount < 0 {
		return errors.New("following count must not be negative")
	}
	if p.VideoCount < 0 {
		return errors.New("video count must not be negative")
	}
	return nil
}

// IsZero reports whether the snapshot is the failed-lookup default.
func (p *ProfileSnapshot) IsZero() bool {
	return p.Signature == "" && p.FollowerCount == 0 && p.FollowingCount == 0 &&
		p.VideoCount == 0 && p.AvatarURL == ""
}
