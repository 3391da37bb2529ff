package models

import "encoding/json"

// EncodeMediaList serializes media references for storage. A nil slice
// encodes as an empty array so reads never produce null.
func EncodeMediaList(refs []string) string {
	if refs == nil {
		refs = []string{}
	}
	b, err := json.Marshal(refs)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeMediaList restores the stored encoding to an ordered string slice.
// A value that does not parse as a JSON array is returned as a one-element
// slice holding the raw value, so a single corrupt column never fails the
// whole read.
func DecodeMediaList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var refs []string
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		return []string{raw}
	}
	if refs == nil {
		return []string{}
	}
	return refs
}
