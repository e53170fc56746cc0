package identity

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"plain string", `{"v":"abc123"}`, "abc123"},
		{"numeric id", `{"v":42}`, "42"},
		{"whitespace trimmed", `{"v":"  u-7  "}`, "u-7"},
		{"empty string", `{"v":""}`, ""},
		{"literal null string", `{"v":"null"}`, ""},
		{"literal NULL string", `{"v":"NULL"}`, ""},
		{"literal undefined", `{"v":"undefined"}`, ""},
		{"json null", `{"v":null}`, ""},
		{"missing", `{}`, ""},
		{"object is not a token", `{"v":{"id":"x"}}`, ""},
		{"array is not a token", `{"v":["x"]}`, ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeToken(gjson.Get(tc.doc, "v")); got != tc.want {
				t.Fatalf("NormalizeToken(%s) = %q, want %q", tc.doc, got, tc.want)
			}
		})
	}
}

func TestNormalizeString(t *testing.T) {
	if got := NormalizeString(" Null "); got != "" {
		t.Fatalf("NormalizeString = %q, want empty", got)
	}
	if got := NormalizeString("partner-9"); got != "partner-9" {
		t.Fatalf("NormalizeString = %q", got)
	}
}
