package merge

import (
	"reflect"
	"testing"

	"autofill-backend/internal/documents"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/schema"
)

func strPtr(s string) *string { return &s }

func TestBuildDocumentWinsOverProfile(t *testing.T) {
	profile := profiles.Profile{
		CandidateName: "Ram Singh",
		FatherName:    "Profile Father",
		DOB:           "02/02/1999",
	}
	doc := documents.Document{Fields: schema.CanonicalRecord{
		"father_name": strPtr("Shyam Lal"),
		"dob":         strPtr("01/01/2000"),
	}}

	data := Build(profile, doc)
	if data[schema.FatherName] != "Shyam Lal" {
		t.Fatalf("document value lost: %q", data[schema.FatherName])
	}
	if data[schema.DOB] != "01/01/2000" {
		t.Fatalf("document dob lost: %q", data[schema.DOB])
	}
	if data[schema.CandidateName] != "Ram Singh" {
		t.Fatalf("profile fallback lost: %q", data[schema.CandidateName])
	}
}

func TestBuildAliasOrder(t *testing.T) {
	doc := documents.Document{Fields: schema.CanonicalRecord{
		"father_name": strPtr("Snake Case"),
		"fathersName": strPtr("Legacy Camel"),
	}}

	data := Build(profiles.Profile{}, doc)
	if data[schema.FatherName] != "Snake Case" {
		t.Fatalf("alias order broken: %q", data[schema.FatherName])
	}

	legacy := documents.Document{Fields: schema.CanonicalRecord{
		"fathersName": strPtr("Legacy Camel"),
	}}
	data = Build(profiles.Profile{}, legacy)
	if data[schema.FatherName] != "Legacy Camel" {
		t.Fatalf("legacy alias not resolved: %q", data[schema.FatherName])
	}
}

func TestBuildContactFieldsComeFromProfile(t *testing.T) {
	profile := profiles.Profile{
		Email:        "ram@example.com",
		MobileNumber: "9876543210",
	}
	doc := documents.Document{Fields: schema.CanonicalRecord{
		"mobile_number": strPtr("0000000000"),
		"email_address": strPtr("scanned@example.com"),
	}}

	data := Build(profile, doc)
	if data[schema.MobileNumber] != "9876543210" {
		t.Fatalf("mobile taken from document: %q", data[schema.MobileNumber])
	}
	if data[schema.EmailID] != "ram@example.com" {
		t.Fatalf("email taken from document: %q", data[schema.EmailID])
	}
}

func TestBuildSkipsAbsentFields(t *testing.T) {
	data := Build(profiles.Profile{CandidateName: "Ram Singh"}, documents.Document{})

	if _, ok := data[schema.AadhaarNumber]; ok {
		t.Fatalf("absent field present in output")
	}
	if data["hasChangedName"] != "No" || data["hasAadhaar"] != "No" {
		t.Fatalf("boolean flags wrong: %+v", data)
	}
	if _, ok := data["changedName"]; ok {
		t.Fatalf("changedName present without name change")
	}
}

func TestBuildIsPure(t *testing.T) {
	profile := profiles.Profile{
		CandidateName:  "Ram Singh",
		HasChangedName: true,
		ChangedName:    "Ram Kumar Singh",
		HasAadhaar:     true,
		AadhaarNumber:  "123412341234",
	}
	doc := documents.Document{Fields: schema.CanonicalRecord{
		"name":        strPtr("RAM SINGH"),
		"roll_number": strPtr("R-42"),
	}}

	first := Build(profile, doc)
	second := Build(profile, doc)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("merge not deterministic:\n%v\n%v", first, second)
	}
	if first["changedName"] != "Ram Kumar Singh" || first["hasChangedName"] != "Yes" {
		t.Fatalf("name change not carried: %+v", first)
	}
}
