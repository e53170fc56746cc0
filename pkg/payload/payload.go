// Package payload extracts the record collection from an API response
// whose wrapping is not reliably known in advance. The same endpoint
// has been observed returning a bare array, a {data: [...]} envelope,
// and deeper nestings, depending on backend version.
package payload

import "github.com/tidwall/gjson"

// WrapperKeys is the ordered list of likely envelope keys. The order is
// a deliberate tie-break for payloads carrying more than one
// array-valued key, not nondeterminism.
var WrapperKeys = []string{"programs", "data", "items", "results", "programList", "content"}

// maxWalkNodes bounds the structural walk on pathological payloads.
const maxWalkNodes = 10000

// Parse wraps raw response bytes for extraction. Invalid JSON yields a
// non-existent result, which ExtractCollection turns into an empty
// collection.
func Parse(body []byte) gjson.Result {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}
	}
	return gjson.ParseBytes(body)
}

// ExtractCollection returns the first plausible record collection in
// payload. Callers always get a usable slice: a lone object becomes a
// single-record collection, anything else becomes empty.
func ExtractCollection(payload gjson.Result) []gjson.Result {
	if !payload.Exists() || payload.Type == gjson.Null {
		return []gjson.Result{}
	}
	if payload.IsArray() {
		return payload.Array()
	}
	if !payload.IsObject() {
		return []gjson.Result{}
	}
	for _, key := range WrapperKeys {
		if v := payload.Get(key); v.IsArray() {
			return v.Array()
		}
	}
	if arr, ok := firstArray(payload); ok {
		return arr.Array()
	}
	return []gjson.Result{payload}
}

// firstArray walks the payload breadth-first over object-valued
// properties and returns the first array found anywhere. Parsed JSON
// text cannot cycle, so a node cap stands in for a visited set.
func firstArray(root gjson.Result) (gjson.Result, bool) {
	queue := []gjson.Result{root}
	seen := 0

	var found gjson.Result
	var ok bool

	for len(queue) > 0 && !ok {
		node := queue[0]
		queue = queue[1:]

		node.ForEach(func(_, value gjson.Result) bool {
			seen++
			if seen > maxWalkNodes {
				return false
			}
			if value.IsArray() {
				found = value
				ok = true
				return false
			}
			if value.IsObject() {
				queue = append(queue, value)
			}
			return true
		})
		if seen > maxWalkNodes {
			break
		}
	}
	return found, ok
}
