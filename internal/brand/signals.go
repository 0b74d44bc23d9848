package brand

import (
	"regexp"
	"strings"

	"github.com/brandlens/brandlens/internal/models"
)

const venueTypes = `barber\s+shop|barbershop|salon|restaurant|cafe|clinic|store|shop|spa|gym|fitness|studio|boutique|market|bakery|pharmacy|hotel|motel`

// businessNamePatterns are tried in order; the first capture group of
// the first match is the candidate business name.
var businessNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:` + venueTypes + `))`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+(?:'s)?\s+(?:` + venueTypes + `))`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+(?:'s)?\s+[A-Z][a-z]+\s+(?:` + venueTypes + `))`),
	regexp.MustCompile(`(?i)location:\s*([^,\n]+)`),
	regexp.MustCompile(`(?i)visit\s+us\s+at\s*:\s*([^,\n]+)`),
	regexp.MustCompile(`(?i)address:\s*([^,\n]+)`),
	regexp.MustCompile(`(?i)(?:call\s+us\s+at|phone|contact):\s*([^,\n]+)`),
	regexp.MustCompile(`(?i)(?:open\s+at|find\s+us\s+at|visit\s+us):\s*([^,\n]+)`),
	regexp.MustCompile(`(?i)(?:professional\s+at|working\s+at|employed\s+at):\s*([^,\n]+)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:barber|salon|restaurant|cafe|clinic|store|shop|spa|gym|fitness|studio|boutique|market|bakery|pharmacy|hotel|motel)(?:\s|$)`),
}

var (
	labelPrefixRe = regexp.MustCompile(`(?i)^(?:location|visit\s+us\s+at|address|call\s+us\s+at|phone|contact|open\s+at|find\s+us\s+at|professional\s+at|working\s+at|employed\s+at):?\s*`)
	nameCleanRe   = regexp.MustCompile(`[^\w\s'&\-]`)
	stopWords     = map[string]struct{}{
		"the": {}, "and": {}, "or": {}, "at": {}, "in": {}, "on": {},
		"with": {}, "for": {}, "by": {},
	}
)

// ExtractBusinessName pulls a shop or business name out of a bio, or
// returns "" when nothing plausible is found. All-caps names are
// converted to title case.
func ExtractBusinessName(signature string) string {
	if signature == "" {
		return ""
	}
	for _, pattern := range businessNamePatterns {
		m := pattern.FindStringSubmatch(signature)
		if m == nil {
			continue
		}
		name := cleanBusinessName(m[1])
		if name == "" {
			continue
		}
		if name == strings.ToUpper(name) {
			return titleCase(name)
		}
		return name
	}
	return ""
}

func cleanBusinessName(raw string) string {
	name := labelPrefixRe.ReplaceAllString(strings.TrimSpace(raw), "")
	name = nameCleanRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if len(name) <= 2 {
		return ""
	}
	if _, stop := stopWords[strings.ToLower(name)]; stop {
		return ""
	}
	return name
}

// Humanize turns a handle like "bobs_barber_shop" into a displayable
// brand name ("Bobs Barber Shop").
func Humanize(handle string) string {
	return titleCase(strings.ReplaceAll(handle, "_", " "))
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var mentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@(\w+)`),
	regexp.MustCompile(`#(\w+)partner`),
	regexp.MustCompile(`#(\w+)ambassador`),
	regexp.MustCompile(`#(\w+)ad\b`),
	regexp.MustCompile(`#ad\s+(\w+)`),
	regexp.MustCompile(`sponsored\s+by\s+(\w+)`),
}

// MentionsFromTitles scans recent post titles for sponsor-style brand
// mentions (@brand, #brandpartner, "sponsored by brand") and returns
// the deduplicated set, capitalized.
func MentionsFromTitles(posts []models.RecentPost) []string {
	seen := make(map[string]struct{})
	var mentions []string
	for _, post := range posts {
		title := strings.ToLower(post.Title)
		for _, pattern := range mentionPatterns {
			for _, m := range pattern.FindAllStringSubmatch(title, -1) {
				candidate := m[1]
				if len(candidate) <= 2 {
					continue
				}
				capitalized := strings.ToUpper(candidate[:1]) + candidate[1:]
				if _, dup := seen[capitalized]; dup {
					continue
				}
				seen[capitalized] = struct{}{}
				mentions = append(mentions, capitalized)
			}
		}
	}
	return mentions
}
