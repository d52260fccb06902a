// Package locale resolves admin-authored localized text maps into display
// strings for a requested locale.
package locale

import "strings"

// DefaultLocale is used when the requested locale has no entry.
const DefaultLocale = "en"

// Text maps a locale tag (e.g. "en", "zh-hk") to a display string.
type Text map[string]string

// Resolver turns a localized text map into a single display string.
type Resolver interface {
	Resolve(locale string, text Text) string
}

// MapResolver resolves with a fallback chain: requested locale, then
// DefaultLocale, then the lexicographically smallest remaining entry so the
// result is deterministic for partially translated maps.
type MapResolver struct{}

func NewResolver() *MapResolver { return &MapResolver{} }

func (*MapResolver) Resolve(locale string, text Text) string {
	if len(text) == 0 {
		return ""
	}
	locale = strings.ToLower(strings.TrimSpace(locale))
	if v, ok := text[locale]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	if v, ok := text[DefaultLocale]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	var bestKey, bestVal string
	for k, v := range text {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if bestKey == "" || k < bestKey {
			bestKey, bestVal = k, v
		}
	}
	return bestVal
}
