package schema

import (
	"testing"
)

func strptr(s string) *string { return &s }

func TestNormalizeCoversFullKeySet(t *testing.T) {
	rec := Normalize(map[string]*string{
		"name":      strptr("Ram Singh"),
		"not_a_key": strptr("dropped"),
		"gender":    strptr(""),
	})

	if len(rec) != len(Fields) {
		t.Fatalf("normalized record has %d keys, want %d", len(rec), len(Fields))
	}
	if got := rec.Value("name"); got != "Ram Singh" {
		t.Errorf("name = %q, want %q", got, "Ram Singh")
	}
	if rec["gender"] != nil {
		t.Errorf("empty string should normalize to nil")
	}
	if _, ok := rec["not_a_key"]; ok {
		t.Errorf("unknown key survived normalization")
	}
}

func TestParseRecordRejectsNonObject(t *testing.T) {
	if _, err := ParseRecord([]byte(`"just a string"`)); err == nil {
		t.Fatal("expected error for non-object payload")
	}
	if _, err := ParseRecord([]byte(`not json at all`)); err == nil {
		t.Fatal("expected error for garbage payload")
	}
}

func TestResolveAliasOrder(t *testing.T) {
	rec := map[string]*string{
		"father_name": strptr("Ram Singh"),
		"fathersName": strptr("Shyam Lal"),
	}
	if got := Resolve(rec, FatherName); got != "Ram Singh" {
		t.Errorf("Resolve preferred %q, want the first alias value %q", got, "Ram Singh")
	}

	// Either historical alias alone must resolve.
	for _, key := range []string{"fatherName", "fathersName"} {
		rec := map[string]*string{key: strptr("Shyam Lal")}
		if got := Resolve(rec, FatherName); got != "Shyam Lal" {
			t.Errorf("alias %q: Resolve = %q, want %q", key, got, "Shyam Lal")
		}
	}
}

func TestIsCanonical(t *testing.T) {
	if !IsCanonical("father_name") {
		t.Error("father_name should be canonical")
	}
	if IsCanonical("fathersName") {
		t.Error("fathersName is an alias, not a canonical key")
	}
}
