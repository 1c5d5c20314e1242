package schema

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	separatorRe  = regexp.MustCompile(`[\s./\\-]+`)
	underscoreRe = regexp.MustCompile(`_+`)
	nonKeyRe     = regexp.MustCompile(`[^a-z0-9_]`)
)

// NormalizeForMatching canonicalizes a header label for equality comparison:
// lowercased, trimmed, internal whitespace collapsed to single spaces. The
// result is never displayed or persisted as a label.
func NormalizeForMatching(raw string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " ")))
}

// NormalizeForStorage canonicalizes a header label into a storage-safe field
// key: lowercased, separators collapsed to single underscores, anything
// outside [a-z0-9_] dropped. Idempotent.
func NormalizeForStorage(raw string) string {
	key := strings.NewReplacer("\n", " ", "\r", " ", ".", "", "$", "").Replace(raw)
	key = strings.ToLower(strings.TrimSpace(key))
	key = separatorRe.ReplaceAllString(key, "_")
	key = underscoreRe.ReplaceAllString(key, "_")
	key = nonKeyRe.ReplaceAllString(key, "")
	return key
}
