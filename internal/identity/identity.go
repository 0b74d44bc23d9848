// Package identity normalizes heterogeneous raw creator records into
// canonical CreatorIdentity values and deduplicates them by handle.
package identity

import (
	"strconv"
	"strings"

	"github.com/brandlens/brandlens/internal/logger"
	"github.com/brandlens/brandlens/internal/models"
)

// handleAliases is the ordered list of field names tried when resolving
// a creator handle from a raw record. The first present, non-empty,
// non-"None" value wins.
var handleAliases = []string{
	"user_unique_id",
	"unique_id",
	"author_unique_id",
	"creator_id",
	"username",
	"user_id",
}

var displayNameAliases = []string{
	"author_nickname",
	"user_nickname",
	"nickname",
	"display_name",
}

var videoIDAliases = []string{
	"video_id",
	"aweme_id",
	"id",
}

var signatureAliases = []string{
	"signature",
	"description",
	"bio",
}

// Extract converts raw records into deduplicated creator identities.
// Records may be flat, or carry identity fields nested under a
// "basic_info" sub-object. Records without a resolvable handle are
// skipped. Duplicates by handle keep the first-seen record, in
// insertion order.
func Extract(rawRecords []map[string]any) []models.CreatorIdentity {
	seen := make(map[string]struct{}, len(rawRecords))
	identities := make([]models.CreatorIdentity, 0, len(rawRecords))

	for i, record := range rawRecords {
		id, ok := fromRecord(record)
		if !ok {
			logger.Debug("Skipping record %d: no resolvable handle", i)
			continue
		}
		if _, dup := seen[id.Handle]; dup {
			logger.Debug("Skipping duplicate handle %q at record %d", id.Handle, i)
			continue
		}
		seen[id.Handle] = struct{}{}
		identities = append(identities, id)
	}

	logger.Info("Extracted %d unique creators from %d records", len(identities), len(rawRecords))
	return identities
}

func fromRecord(record map[string]any) (models.CreatorIdentity, bool) {
	// A nested record keeps identity fields under basic_info while the
	// video title stays at the top level.
	fields := record
	if nested, ok := record["basic_info"].(map[string]any); ok {
		fields = merged(nested, record)
	}

	handle, ok := resolve(fields, handleAliases)
	if !ok {
		return models.CreatorIdentity{}, false
	}

	id := models.CreatorIdentity{
		Handle:        handle,
		DisplayName:   firstString(fields, displayNameAliases),
		SourceVideoID: firstString(fields, videoIDAliases),
		SourceTitle:   stringField(record, "title"),
		RawSignature:  firstString(fields, signatureAliases),
	}
	if ct, ok := fields["create_time"]; ok {
		id.SourceCreateTime = asString(ct)
	}
	return id, id.Validate() == nil
}

// resolve tries each alias in order and returns the first usable value.
func resolve(fields map[string]any, aliases []string) (string, bool) {
	for _, alias := range aliases {
		v, ok := fields[alias]
		if !ok {
			continue
		}
		s := strings.TrimSpace(asString(v))
		if s == "" || s == "None" {
			continue
		}
		return s, true
	}
	return "", false
}

// merged overlays nested identity fields on top of the outer record,
// with the nested values taking precedence.
func merged(nested, outer map[string]any) map[string]any {
	out := make(map[string]any, len(nested)+len(outer))
	for k, v := range outer {
		out[k] = v
	}
	for k, v := range nested {
		out[k] = v
	}
	return out
}

func firstString(fields map[string]any, aliases []string) string {
	s, _ := resolve(fields, aliases)
	return s
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key]; ok {
		return strings.TrimSpace(asString(v))
	}
	return ""
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
