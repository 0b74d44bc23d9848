package classifier

import (
	"fmt"
	"strings"

	"github.com/brandlens/brandlens/internal/brand"
	"github.com/brandlens/brandlens/internal/models"
)

type knownBrand struct {
	token string
	name  string
}

// officialBrands lists lowercase handle tokens of well-known brands in
// a fixed match order, longest tokens first so that compound names win
// over their components.
var officialBrands = []knownBrand{
	{"louisvuitton", "Louis Vuitton"},
	{"urbandecay", "Urban Decay"},
	{"maybelline", "Maybelline"},
	{"covergirl", "CoverGirl"},
	{"starbucks", "Starbucks"},
	{"scentbird", "Scentbird"},
	{"perfumacy", "Perfumacy"},
	{"microsoft", "Microsoft"},
	{"cocacola", "Coca-Cola"},
	{"mcdonald", "McDonald's"},
	{"oldspice", "Old Spice"},
	{"samsung", "Samsung"},
	{"netflix", "Netflix"},
	{"spotify", "Spotify"},
	{"sephora", "Sephora"},
	{"versace", "Versace"},
	{"cartier", "Cartier"},
	{"tiffany", "Tiffany"},
	{"bulgari", "Bulgari"},
	{"garnier", "Garnier"},
	{"costco", "Costco"},
	{"adidas", "Adidas"},
	{"google", "Google"},
	{"amazon", "Amazon"},
	{"chanel", "Chanel"},
	{"armani", "Armani"},
	{"hermes", "Hermès"},
	{"loreal", "L'Oréal"},
	{"revlon", "Revlon"},
	{"apple", "Apple"},
	{"tesla", "Tesla"},
	{"prada", "Prada"},
	{"gucci", "Gucci"},
	{"pepsi", "Pepsi"},
	{"nike", "Nike"},
	{"sony", "Sony"},
	{"uber", "Uber"},
	{"dior", "Dior"},
	{"ulta", "Ulta"},
	{"dove", "Dove"},
	{"kahf", "Kahf"},
}

// officialSuffixes are the second segments of a "brand.suffix" handle
// that indicate an official brand account.
var officialSuffixes = map[string]struct{}{
	"beauty": {}, "official": {}, "store": {}, "shop": {}, "app": {},
	"id": {}, "co": {}, "com": {}, "global": {}, "world": {},
	"usa": {}, "uk": {}, "ca": {}, "us": {}, "de": {}, "fr": {},
	"au": {}, "in": {}, "ph": {}, "my": {},
}

var businessKeywords = []string{
	"shop", "store", "salon", "barber", "restaurant", "cafe", "clinic",
	"location:", "address:", "call", "phone", "number", "contact",
	"visit us", "find us", "open", "hours", "service", "booking",
}

var partnershipKeywords = []string{
	"#ad", "#sponsored", "#partner", "#promo", "#collaboration",
	"ambassador", "discount", "code", "affiliate", "link",
	"promo", "sale", "buy", "purchase", "collab",
}

var brandUsernameTokens = []string{
	"app", "official", "tech", "studio", "brand",
}

var brandBioKeywords = []string{
	"official", "brand", "company", "studio", "tech", "software",
	"download", "available", "store", "get", "try", "use", "platform",
}

var affiliateKeywords = []string{
	"join our affiliate", "get commission", "affiliate program",
	"become an affiliate", "earn commission", "partnership program",
}

var officialIndicators = []string{
	"official", "verified", "@company.com", "@brand.com",
	"team", "support", "headquarters", "corporate",
}

// RuleClassify is the deterministic fallback used when the AI
// dependency is unavailable. Same inputs always produce the same
// result.
func RuleClassify(signature, displayName, handle string) models.ClassificationResult {
	lowHandle := strings.ToLower(strings.TrimSpace(handle))
	lowSignature := strings.ToLower(signature)
	lowDisplayName := strings.ToLower(displayName)

	// Known major brands in the handle win outright.
	for _, kb := range officialBrands {
		if strings.Contains(lowHandle, kb.token) {
			return models.ClassificationResult{
				AccountType: models.AccountOfficial,
				BrandName:   kb.name,
				Confidence:  0.95,
				Rationale:   fmt.Sprintf("Rule-based: Official %s account - recognized brand username", kb.name),
			}
		}
	}

	// brand.suffix handles like nike.store or oldspice.ph.
	if segments := strings.Split(lowHandle, "."); len(segments) == 2 {
		if _, ok := officialSuffixes[segments[1]]; ok {
			name := brand.Humanize(segments[0])
			return models.ClassificationResult{
				AccountType: models.AccountOfficial,
				BrandName:   name,
				Confidence:  0.9,
				Rationale:   fmt.Sprintf("Rule-based: Official %s account - brand.category format (%s)", name, lowHandle),
			}
		}
	}

	brandIndicators := 0
	potentialBrand := ""
	if containsAny(lowHandle, brandUsernameTokens) {
		brandIndicators += 2
		for _, word := range strings.Split(lowHandle, "_") {
			if len(word) > 3 && word != "official" {
				potentialBrand = brand.Humanize(word)
				break
			}
		}
	}
	if containsAny(lowSignature, brandBioKeywords) {
		brandIndicators++
	}
	if containsAny(lowSignature, []string{"download", "app store", "google play", "available now"}) {
		brandIndicators += 2
	}

	affiliateSignals := countMatches(lowSignature, affiliateKeywords)
	businessSignals := countMatches(lowSignature, businessKeywords)
	partnershipSignals := countMatches(lowSignature, partnershipKeywords)
	isOfficial := containsAny(lowHandle+" "+lowDisplayName+" "+lowSignature, officialIndicators)

	switch {
	case brandIndicators >= 3 || (isOfficial && brandIndicators >= 1) || affiliateSignals >= 1:
		if potentialBrand == "" {
			potentialBrand = brand.Humanize(lowHandle)
		}
		confidence := 0.8
		if affiliateSignals >= 1 {
			confidence = 0.9
		}
		return models.ClassificationResult{
			AccountType: models.AccountOfficial,
			BrandName:   potentialBrand,
			Confidence:  confidence,
			Rationale:   fmt.Sprintf("Rule-based: Official brand account - %d brand indicators", brandIndicators),
		}

	case businessSignals >= 2:
		name := brand.ExtractBusinessName(signature)
		if name == "" {
			name = brand.Humanize(lowHandle)
		}
		return models.ClassificationResult{
			AccountType: models.AccountMatrix,
			BrandName:   name,
			Confidence:  0.8,
			Rationale:   fmt.Sprintf("Rule-based: Business representative account - %d business indicators found", businessSignals),
		}

	case partnershipSignals >= 2:
		return models.ClassificationResult{
			AccountType: models.AccountUGC,
			BrandName:   "",
			Confidence:  0.7,
			Rationale:   fmt.Sprintf("Rule-based: UGC creator with partnership signals (%d indicators found)", partnershipSignals),
		}

	case brandIndicators >= 1:
		return models.ClassificationResult{
			AccountType: models.AccountMatrix,
			BrandName:   potentialBrand,
			Confidence:  0.6,
			Rationale:   "Rule-based: Potential matrix account - some brand connections detected",
		}

	default:
		return models.ClassificationResult{
			AccountType: models.AccountNonBranded,
			BrandName:   "",
			Confidence:  0.9,
			Rationale:   "Rule-based: Regular creator - no significant brand indicators found",
		}
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
