package merge

import (
	"autofill-backend/internal/documents"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/schema"
)

// Data is the flat field map handed to the automation driver. Keys are the
// merged-field names from the schema package, values are plain strings.
// Absent fields are simply missing keys; the driver skips them.
type Data map[string]string

// Build combines a stored profile with the fields extracted from one
// document. Document values win over profile values for identity and
// education fields; contact details and the name-change flags always come
// from the profile, since scans never carry them reliably.
//
// Build is pure: same inputs always give the same output, and it never
// contains binary payloads or extracted text blobs.
func Build(profile profiles.Profile, doc documents.Document) Data {
	record := doc.Fields
	if record == nil {
		record = schema.CanonicalRecord{}
	}

	out := Data{}
	put := func(key, docValue, profileValue string) {
		if docValue != "" {
			out[key] = docValue
			return
		}
		if profileValue != "" {
			out[key] = profileValue
		}
	}

	put(schema.CandidateName, schema.Resolve(record, schema.CandidateName), profile.CandidateName)
	put(schema.FatherName, schema.Resolve(record, schema.FatherName), profile.FatherName)
	put(schema.MotherName, schema.Resolve(record, schema.MotherName), profile.MotherName)
	put(schema.Gender, schema.Resolve(record, schema.Gender), profile.Gender)
	put(schema.DOB, schema.Resolve(record, schema.DOB), profile.DOB)
	put(schema.AadhaarNumber, schema.Resolve(record, schema.AadhaarNumber), profile.AadhaarNumber)
	put(schema.EducationBoard, schema.Resolve(record, schema.EducationBoard), profile.EducationBoard)
	put(schema.RollNumber, schema.Resolve(record, schema.RollNumber), profile.RollNumber)
	put(schema.YearOfPassing, schema.Resolve(record, schema.YearOfPassing), profile.YearOfPassing)
	put(schema.HighestQualification, schema.Resolve(record, schema.HighestQualification), profile.HighestQualification)

	// Contact details come from the registered profile only.
	if profile.MobileNumber != "" {
		out[schema.MobileNumber] = profile.MobileNumber
	}
	if profile.Email != "" {
		out[schema.EmailID] = profile.Email
	}

	out["hasChangedName"] = boolWord(profile.HasChangedName)
	if profile.HasChangedName && profile.ChangedName != "" {
		out["changedName"] = profile.ChangedName
	}
	out["hasAadhaar"] = boolWord(profile.HasAadhaar)

	return out
}

func boolWord(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
