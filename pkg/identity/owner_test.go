package identity

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestResolveOwner(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"direct partnerId", `{"partnerId":"p-1"}`, "p-1"},
		{"snake case", `{"partner_id":"p-2"}`, "p-2"},
		{"priority order wins", `{"userId":"u-1","partnerId":"p-1"}`, "p-1"},
		{"skips null literal", `{"partnerId":"null","userId":"u-3"}`, "u-3"},
		{"numeric id", `{"userId":77}`, "77"},
		{"direct key holds object", `{"partnerId":{"id":"p-9","name":"x"}}`, "p-9"},
		{"object without id keeps searching", `{"partnerId":{"name":"x"},"userId":"u-4"}`, "u-4"},
		{"nested partner object", `{"partner":{"_id":"p-5"}}`, "p-5"},
		{"nested creator object", `{"creator":{"userId":"u-6"}}`, "u-6"},
		{"direct beats nested", `{"ownerId":"o-1","partner":{"id":"p-1"}}`, "o-1"},
		{"nothing resolvable", `{"title":"spring drive"}`, ""},
		{"empty record", `{}`, ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			record := gjson.Parse(tc.doc)
			got := ResolveOwner(record, DefaultOwnerKeys, DefaultNestedKeys)
			if got != tc.want {
				t.Fatalf("ResolveOwner(%s) = %q, want %q", tc.doc, got, tc.want)
			}
		})
	}
}

func TestResolveOwnerDeterministic(t *testing.T) {
	record := gjson.Parse(`{"userId":"u-1","partner":{"id":"p-1"}}`)
	first := ResolveOwner(record, DefaultOwnerKeys, DefaultNestedKeys)
	for i := 0; i < 10; i++ {
		if got := ResolveOwner(record, DefaultOwnerKeys, DefaultNestedKeys); got != first {
			t.Fatalf("ResolveOwner not deterministic: %q then %q", first, got)
		}
	}
}

func TestResolveOwnerCustomKeyOrder(t *testing.T) {
	record := gjson.Parse(`{"userId":"u-1","partnerId":"p-1"}`)
	if got := ResolveOwner(record, []string{"userId", "partnerId"}, nil); got != "u-1" {
		t.Fatalf("caller-specified order ignored: got %q", got)
	}
}
