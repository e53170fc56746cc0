package identity

import (
	"encoding/base64"
	"strings"

	"github.com/caredash/impactboard/pkg/session"
	"github.com/tidwall/gjson"
)

// DefaultStorageKeys is the probe order for a directly stored actor id.
var DefaultStorageKeys = []string{
	"userId", "id",
	"partnerId", "partner_id",
	"user_id",
	"ownerId", "owner_id",
}

// DefaultClaimKeys is the probe order inside a decoded bearer token.
var DefaultClaimKeys = []string{"userId", "id", "partnerId", "ownerId", "sub"}

// bearerKeys lists where the raw token may live in session storage.
var bearerKeys = []string{"token", "authToken", "accessToken"}

// ResolveActor returns the current session actor's identity token, or
// "" when no storage key and no decodable bearer token yields one.
// Callers must surface "" as an explicit "not available" state, never
// as zero or as "all records".
func ResolveActor(s session.Reader) string {
	return ResolveActorKeys(s, DefaultStorageKeys, DefaultClaimKeys)
}

// ResolveActorKeys is ResolveActor with caller-supplied probe lists.
func ResolveActorKeys(s session.Reader, storageKeys, claimKeys []string) string {
	if s == nil {
		return ""
	}
	for _, key := range storageKeys {
		if tok := NormalizeString(s.Get(key)); tok != "" {
			return tok
		}
	}

	for _, key := range bearerKeys {
		raw := strings.TrimSpace(s.Get(key))
		if raw == "" {
			continue
		}
		claims, ok := decodeBearerPayload(raw)
		if !ok {
			continue
		}
		for _, claim := range claimKeys {
			if tok := NormalizeToken(claims.Get(claim)); tok != "" {
				return tok
			}
		}
	}
	return ""
}

// decodeBearerPayload extracts the JSON claims from the middle segment
// of a dot-delimited bearer token. Malformed tokens are simply skipped.
func decodeBearerPayload(token string) (gjson.Result, bool) {
	token = strings.TrimPrefix(token, "Bearer ")
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return gjson.Result{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return gjson.Result{}, false
	}
	if !gjson.ValidBytes(payload) {
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(payload), true
}
