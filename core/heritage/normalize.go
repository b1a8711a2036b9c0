package heritage

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Input caps keep client-supplied strings from bloating prompts, cache keys,
// and rate-limit buckets. Caps count characters, not bytes.
const (
	maxSubjectLen  = 200
	maxLanguageLen = 50
	maxImages      = 5
)

// truncateRunes caps s at max characters without splitting a multi-byte rune.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}

// normalizeSubject trims and length-caps a subject name.
func normalizeSubject(subject string) string {
	return truncateRunes(strings.TrimSpace(subject), maxSubjectLen)
}

// normalizeLanguage trims and length-caps a language name, defaulting to
// English when the client sends nothing.
func normalizeLanguage(language string) string {
	language = truncateRunes(strings.TrimSpace(language), maxLanguageLen)
	if language == "" {
		language = "English"
	}
	return language
}

// cacheKey builds the deterministic fingerprint of normalized request inputs.
// Same normalized inputs always map to the same key.
func cacheKey(endpoint string, parts ...string) string {
	var b strings.Builder
	b.WriteString(endpoint)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(strings.ToLower(p))
	}
	return b.String()
}

// imagesFingerprint hashes image payloads into a compact cache key component.
// 16 bytes of SHA-256 is plenty for fingerprinting and halves the key size.
func imagesFingerprint(images [][]byte) string {
	h := sha256.New()
	for _, img := range images {
		h.Write(img)
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}
