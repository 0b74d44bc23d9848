package models

import "errors"

// AccountType is the brand-relationship category assigned to a creator.
type AccountType string

const (
	// AccountOfficial is an official brand/company account or the primary
	// promotional account for a product.
	AccountOfficial AccountType = "official_account"
	// AccountMatrix is an account clearly tied to one specific brand or local
	// business without being its primary official account.
	AccountMatrix AccountType = "matrix_account"
	// AccountUGC is an independent creator with validated brand-partnership
	// signals.
	AccountUGC AccountType = "ugc_creator"
	// AccountNonBranded is an independent creator with no brand attribution.
	AccountNonBranded AccountType = "non_branded_creator"
)

// Valid reports whether t is one of the four defined account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountOfficial, AccountMatrix, AccountUGC, AccountNonBranded:
		return true
	}
	return false
}

// ClassificationResult is the outcome of classifying a single creator.
// Exactly one underlying signal maps to the account type; the mapping from
// the classifier's boolean triple is:
//
//	official            → official_account
//	matrix              → matrix_account
//	ugc, brand present  → ugc_creator
//	ugc, brand empty    → non_branded_creator
type ClassificationResult struct {
	AccountType AccountType `json:"account_type"`
	BrandName   string      `json:"brand_name"` // Possibly empty
	Confidence  float64     `json:"confidence"` // 0.0–1.0
	Rationale   string      `json:"rationale"`  // Verbatim classifier explanation
}

// Validate checks the classification invariants.
func (r *ClassificationResult) Validate() error {
	if !r.AccountType.Valid() {
		return errors.New("account type must be one of the four defined categories")
	}
	if r.Confidence < 0.0 || r.Confidence > 1.0 {
		return errors.New("confidence must be between 0.0 and 1.0")
	}
	if r.AccountType == AccountNonBranded && r.BrandName != "" {
		return errors.New("non-branded creators must not carry a brand name")
	}
	return nil
}

// BrandRelated reports whether this classification counts the creator as
// brand-related: official, matrix, or UGC with a validated brand name.
func (r *ClassificationResult) BrandRelated() bool {
	switch r.AccountType {
	case AccountOfficial, AccountMatrix:
		return true
	case AccountUGC:
		return r.BrandName != ""
	}
	return false
}
