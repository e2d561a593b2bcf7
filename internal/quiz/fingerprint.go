package quiz

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Fingerprint derives the dedup key for a question text: the MD5 hex digest
// of the trimmed, lower-cased text.
//
// Only the question text participates. Options, topic, level, and id are
// ignored on purpose: two rewordings that differ in casing or surrounding
// whitespace collide, while genuinely different phrasings of the same
// concept do not.
func Fingerprint(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
