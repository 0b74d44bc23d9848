package models

import "testing"

func TestCreatorIdentityValidate(t *testing.T) {
	tests := []struct {
		name     string
		identity CreatorIdentity
		wantErr  bool
	}{
		{
			name:     "valid identity",
			identity: CreatorIdentity{Handle: "oldspice.ph", DisplayName: "Old Spice PH"},
			wantErr:  false,
		},
		{
			name:     "empty handle",
			identity: CreatorIdentity{Handle: ""},
			wantErr:  true,
		},
		{
			name:     "untrimmed handle",
			identity: CreatorIdentity{Handle: " creator "},
			wantErr:  true,
		},
		{
			name:     "sentinel None handle",
			identity: CreatorIdentity{Handle: "None"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.identity.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProfileSnapshotZeroValueIsValid(t *testing.T) {
	var snap ProfileSnapshot
	if err := snap.Validate(); err != nil {
		t.Errorf("zero-value snapshot must validate, got %v", err)
	}
	if !snap.IsZero() {
		t.Error("zero-value snapshot must report IsZero")
	}
}

func TestProfileSnapshotNegativeCounts(t *testing.T) {
	snap := ProfileSnapshot{Handle: "x", FollowerCount: -1}
	if err := snap.Validate(); err == nil {
		t.Error("expected error for negative follower count")
	}
}

func TestAccountTypeValid(t *testing.T) {
	for _, typ := range []AccountType{AccountOfficial, AccountMatrix, AccountUGC, AccountNonBranded} {
		if !typ.Valid() {
			t.Errorf("expected %q to be valid", typ)
		}
	}
	if AccountType("influencer").Valid() {
		t.Error("unknown account type must not be valid")
	}
}

func TestClassificationResultValidate(t *testing.T) {
	tests := []struct {
		name    string
		result  ClassificationResult
		wantErr bool
	}{
		{
			name:    "official with brand",
			result:  ClassificationResult{AccountType: AccountOfficial, BrandName: "Nike", Confidence: 0.95},
			wantErr: false,
		},
		{
			name:    "non-branded with brand name",
			result:  ClassificationResult{AccountType: AccountNonBranded, BrandName: "Nike", Confidence: 0.9},
			wantErr: true,
		},
		{
			name:    "confidence above one",
			result:  ClassificationResult{AccountType: AccountUGC, BrandName: "Nike", Confidence: 1.5},
			wantErr: true,
		},
		{
			name:    "invalid account type",
			result:  ClassificationResult{AccountType: "fan_account", Confidence: 0.5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBrandRelated(t *testing.T) {
	tests := []struct {
		name   string
		result ClassificationResult
		want   bool
	}{
		{"official", ClassificationResult{AccountType: AccountOfficial}, true},
		{"matrix", ClassificationResult{AccountType: AccountMatrix, BrandName: "Bob Barber Shop"}, true},
		{"ugc with brand", ClassificationResult{AccountType: AccountUGC, BrandName: "Nike"}, true},
		{"ugc without brand", ClassificationResult{AccountType: AccountUGC}, false},
		{"non-branded", ClassificationResult{AccountType: AccountNonBranded}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.BrandRelated(); got != tt.want {
				t.Errorf("BrandRelated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregateReportValidate(t *testing.T) {
	good := AggregateReport{
		TotalProcessed:  10,
		OfficialCount:   2,
		MatrixCount:     1,
		UGCCount:        3,
		NonBrandedCount: 4,
		BrandRelated:    6,
		NonBrand:        4,
	}
	if err := good.Validate(); err != nil {
		t.Errorf("expected valid aggregate, got %v", err)
	}

	bad := good
	bad.UGCCount = 5
	if err := bad.Validate(); err == nil {
		t.Error("expected error when type counts do not sum to total")
	}

	bad = good
	bad.NonBrand = 5
	if err := bad.Validate(); err == nil {
		t.Error("expected error when brand split does not sum to total")
	}
}

func TestCreatorReportValidateConsistency(t *testing.T) {
	report := CreatorReport{
		Identity:       CreatorIdentity{Handle: "nike"},
		Classification: ClassificationResult{AccountType: AccountOfficial, BrandName: "Nike", Confidence: 0.95},
		IsBrandRelated: false, // inconsistent on purpose
	}
	if err := report.Validate(); err == nil {
		t.Error("expected error for inconsistent is_brand_related flag")
	}

	report.IsBrandRelated = true
	if err := report.Validate(); err != nil {
		t.Errorf("expected valid report, got %v", err)
	}
}
