// Package brand validates extracted brand names and pulls brand
// signals (emails, business names, sponsor mentions) out of creator
// text.
package brand

import (
	"regexp"
	"strings"

	"github.com/brandlens/brandlens/internal/models"
)

// knownBrands is the curated allow-list used to validate brand names
// extracted from UGC creators. Lookups are lowercase.
var knownBrands = []string{
	"nike", "adidas", "apple", "samsung", "google", "microsoft",
	"chanel", "dior", "gucci", "prada", "versace", "sephora", "ulta",
	"lululemon", "nordstrom", "zara", "forever21", "uniqlo", "target",
	"walmart", "amazon", "shein", "asos", "boohoo", "revolve", "fenty",
	"glossier", "cerave", "neutrogena", "olay", "clinique", "lancome",
	"nars", "benefit", "tarte", "mac", "maybelline", "revlon",
	"covergirl", "loreal", "nyx", "morphe", "kylie", "rare beauty",
	"drunk elephant", "the ordinary", "la roche posay", "estee lauder",
	"tom ford", "charlotte tilbury", "urban decay", "too faced",
	"smashbox", "bobbi brown", "essence", "milani", "elf", "colourpop",
	"anastasia", "coach", "michael kors", "kate spade", "marc jacobs",
	"tory burch", "rebecca minkoff", "cartier", "tiffany", "bulgari",
	"rolex", "omega", "casio", "fossil", "daniel wellington",
	"anthropologie", "free people", "reformation", "everlane", "ganni",
	"staud", "jacquemus", "bottega veneta", "old spice", "costco",
	"louis vuitton", "balenciaga", "givenchy", "celine", "hermes",
	"saint laurent", "scentbird", "perfumacy", "cave",
}

// noiseWords are segments that look like brand names but are common
// first names, platforms, or filler, and never survive UGC filtering.
var noiseWords = map[string]struct{}{
	"andrea": {}, "josh": {}, "leam": {}, "tiktok": {}, "instagram": {},
	"facebook": {}, "twitter": {}, "youtube": {}, "snapchat": {},
	"whatsapp": {}, "linkedin": {}, "pinterest": {}, "reddit": {},
	"discord": {}, "the": {}, "and": {}, "for": {}, "with": {},
	"from": {}, "about": {}, "none": {}, "null": {}, "unknown": {},
	"n/a": {}, "test": {}, "example": {}, "sample": {}, "demo": {},
	"john": {}, "mike": {}, "sarah": {}, "anna": {}, "david": {},
	"emma": {}, "james": {}, "lisa": {}, "maria": {}, "alex": {},
	"kate": {}, "tom": {}, "jane": {}, "bob": {}, "amy": {},
}

// noPartnershipPhrases in the classifier's rationale suppress any
// extracted brand name outright.
var noPartnershipPhrases = []string{
	"no indication of a brand partnership",
	"no indication of brand partnership",
	"no brand partnership",
	"regular creator",
	"personal account",
}

var (
	emailRe  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	letterRe = regexp.MustCompile(`[a-zA-Z]`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
)

// FilterName validates an extracted brand name against the account
// type. Official and matrix classifications are trusted and pass
// through trimmed. UGC extractions go through the conservative
// allow-list filter. A rationale signalling "no partnership" clears
// the brand regardless of type.
func FilterName(brandName string, accountType models.AccountType, rationale string) string {
	name := strings.TrimSpace(brandName)
	if name == "" {
		return ""
	}

	lowRationale := strings.ToLower(rationale)
	for _, phrase := range noPartnershipPhrases {
		if strings.Contains(lowRationale, phrase) {
			return ""
		}
	}

	switch accountType {
	case models.AccountOfficial, models.AccountMatrix:
		return name
	case models.AccountUGC:
		return filterUGC(name)
	default:
		return ""
	}
}

func filterUGC(name string) string {
	var kept []string
	for _, segment := range strings.Split(name, ",") {
		segment = strings.TrimSpace(segment)
		if !plausibleSegment(segment) {
			continue
		}
		if matchesKnownBrand(segment) {
			kept = append(kept, segment)
		}
	}
	return strings.Join(kept, ", ")
}

func plausibleSegment(segment string) bool {
	if len(segment) < 3 {
		return false
	}
	if digitsRe.MatchString(segment) {
		return false
	}
	if !letterRe.MatchString(segment) {
		return false
	}
	if _, noisy := noiseWords[strings.ToLower(segment)]; noisy {
		return false
	}
	return true
}

// matchesKnownBrand checks for a fuzzy (substring either direction)
// match against the allow-list.
func matchesKnownBrand(segment string) bool {
	low := strings.ToLower(segment)
	collapsed := strings.NewReplacer(" ", "", "-", "").Replace(low)
	for _, known := range knownBrands {
		knownCollapsed := strings.NewReplacer(" ", "", "-", "").Replace(known)
		if strings.Contains(collapsed, knownCollapsed) || strings.Contains(knownCollapsed, collapsed) {
			return true
		}
	}
	return false
}

// ExtractEmail returns the first email address found in a bio, or "".
func ExtractEmail(signature string) string {
	return emailRe.FindString(signature)
}
