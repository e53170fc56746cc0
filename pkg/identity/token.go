// Package identity resolves who a record belongs to and who the current
// session actor is. Backend responses spell ownership a dozen different
// ways (partnerId, user_id, embedded owner objects...), and some paths
// serialize missing relations as the literal string "null", so every
// comparison goes through token normalization first.
package identity

import (
	"strings"

	"github.com/tidwall/gjson"
)

// NormalizeToken coerces a payload value into an identity token.
// Returns "" for missing values, empty strings, objects/arrays, and the
// literal strings "null"/"undefined" in any casing.
func NormalizeToken(v gjson.Result) string {
	if !v.Exists() || v.Type == gjson.Null || v.IsObject() || v.IsArray() {
		return ""
	}
	return NormalizeString(v.String())
}

// NormalizeString is the string-input form of NormalizeToken, used for
// values read straight from session storage.
func NormalizeString(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "undefined":
		return ""
	}
	return s
}
