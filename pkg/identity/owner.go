package identity

import "github.com/tidwall/gjson"

// DefaultOwnerKeys is the priority order for direct owner references on
// a record. Order matters: the first key that yields a token wins.
var DefaultOwnerKeys = []string{
	"partnerId", "partner_id",
	"userId", "user_id",
	"ownerId", "owner_id",
	"createdBy", "created_by",
	"ngoId", "ngo_id",
}

// DefaultNestedKeys names sub-objects that may embed the owner instead
// of referencing it by id.
var DefaultNestedKeys = []string{"partner", "owner", "creator"}

// embeddedIDKeys is the secondary probe list applied when an owner
// candidate turns out to be an object rather than a scalar id.
var embeddedIDKeys = []string{
	"id", "_id",
	"userId", "user_id",
	"partnerId", "partner_id",
	"ownerId", "owner_id",
	"createdBy", "created_by",
	"ngoId", "ngo_id",
}

// ResolveOwner returns the identity token that attributes record to a
// partner/user, or "" when nothing resolves. "" is a valid outcome: not
// every record is attributable, and callers must exclude such records
// from owner-scoped views rather than treat them as errors.
func ResolveOwner(record gjson.Result, directKeys, nestedKeys []string) string {
	for _, key := range directKeys {
		v := record.Get(key)
		if !v.Exists() {
			continue
		}
		if v.IsObject() {
			if tok := embeddedID(v); tok != "" {
				return tok
			}
			continue
		}
		if tok := NormalizeToken(v); tok != "" {
			return tok
		}
	}
	for _, key := range nestedKeys {
		if v := record.Get(key); v.IsObject() {
			if tok := embeddedID(v); tok != "" {
				return tok
			}
		}
	}
	return ""
}

func embeddedID(obj gjson.Result) string {
	for _, key := range embeddedIDKeys {
		if tok := NormalizeToken(obj.Get(key)); tok != "" {
			return tok
		}
	}
	return ""
}
