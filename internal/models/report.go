package models

import (
	"errors"
	"time"
)

// CreatorReport is the final per-creator record: identity, enrichment data,
// derived metrics, and the filtered classification. Built once per creator per
// run and never mutated afterwards, so batch goroutines can hand completed
// reports to the orchestrator without locking.
type CreatorReport struct {
	Identity       CreatorIdentity      `json:"identity"`
	Profile        ProfileSnapshot      `json:"profile"`
	Metrics        VideoMetrics         `json:"metrics"`
	Classification ClassificationResult `json:"classification"`
	Email          string               `json:"email"`            // Extracted from the bio, possibly empty
	ProfileURL     string               `json:"profile_url"`      // Derived share link for the handle
	FirstSeenDate  string               `json:"first_seen_date"`  // Source create time rendered as YYYY-MM-DD
	IsBrandRelated bool                 `json:"is_brand_related"` // Derived from the classification
	Failed         bool                 `json:"failed"`           // True when the creator unit of work errored out
	FailureReason  string               `json:"failure_reason,omitempty"`
}

// Validate checks that the report is internally consistent.
func (r *CreatorReport) Validate() error {
	if err := r.Identity.Validate(); err != nil {
		return err
	}
	if err := r.Profile.Validate(); err != nil {
		return err
	}
	if err := r.Metrics.Validate(); err != nil {
		return err
	}
	if err := r.Classification.Validate(); err != nil {
		return err
	}
	if r.IsBrandRelated != r.Classification.BrandRelated() {
		return errors.New("is_brand_related must match the classification")
	}
	return nil
}

// BrandCounts breaks down how many accounts of each type were attributed to a
// single normalized brand name.
type BrandCounts struct {
	Official int `json:"official"`
	Matrix   int `json:"matrix"`
	UGC      int `json:"ugc"`
	Total    int `json:"total"`
}

// AggregateReport summarizes a completed (or partial) result set. It is
// always recomputed from the full CreatorReport collection, never maintained
// incrementally, to avoid drift.
type AggregateReport struct {
	TotalProcessed  int     `json:"total_processed"`
	OfficialCount   int     `json:"official_count"`
	MatrixCount     int     `json:"matrix_count"`
	UGCCount        int     `json:"ugc_count"`
	NonBrandedCount int     `json:"non_branded_count"`
	FailedCount     int     `json:"failed_count"`
	BrandRelated    int     `json:"brand_related"`
	NonBrand        int     `json:"non_brand"`
	BrandRelatedPct float64 `json:"brand_related_pct"`
	NonBrandPct     float64 `json:"non_brand_pct"`

	// Brands maps a normalized brand name to its per-type account counts.
	Brands map[string]BrandCounts `json:"brands"`
}

// Validate checks the aggregate consistency invariants.
func (a *AggregateReport) Validate() error {
	if a.OfficialCount+a.MatrixCount+a.UGCCount+a.NonBrandedCount != a.TotalProcessed {
		return errors.New("account type counts must sum to total processed")
	}
	if a.BrandRelated+a.NonBrand != a.TotalProcessed {
		return errors.New("brand-related and non-brand counts must sum to total processed")
	}
	return nil
}

// FinalReport is what a completed analysis run hands to the collaborator
// layer: the per-creator results plus the aggregate, and run metadata.
type FinalReport struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Partial    bool            `json:"partial"` // True when the run stopped early (deadline or fatal error)
	Creators   []CreatorReport `json:"creators"`
	Aggregate  AggregateReport `json:"aggregate"`
}

// ProgressEvent is a best-effort progress notification emitted per completed
// creator and per completed batch. Delivery is fire-and-forget; consumers
// must not rely on every event arriving.
type ProgressEvent struct {
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Message   string `json:"message"`
}
