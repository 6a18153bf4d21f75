package schema

import (
	"encoding/json"
	"fmt"
)

// CanonicalRecord maps each canonical field to its extracted value, or nil
// when the field was not found in the source text.
type CanonicalRecord map[string]*string

// ParseRecord decodes a JSON object into a canonical record. Unknown keys are
// dropped and missing keys become explicit nulls, so a parsed record always
// covers the full schema.
func ParseRecord(raw []byte) (CanonicalRecord, error) {
	var decoded map[string]*string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode canonical record: %w", err)
	}
	return Normalize(decoded), nil
}

// Normalize restricts a record to the canonical key set, inserting nils for
// absent fields and treating empty strings as nulls.
func Normalize(in map[string]*string) CanonicalRecord {
	out := make(CanonicalRecord, len(Fields))
	for _, key := range Fields {
		val := in[key]
		if val != nil && *val == "" {
			val = nil
		}
		out[key] = val
	}
	return out
}

// Value returns the non-empty value for key, or "" when absent or null.
func (r CanonicalRecord) Value(key string) string {
	if r == nil {
		return ""
	}
	if val := r[key]; val != nil {
		return *val
	}
	return ""
}
