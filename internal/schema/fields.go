package schema

import mapset "github.com/deckarep/golang-set/v2"

// Fields is the fixed list of canonical extraction keys. Every canonical
// record carries exactly this key set; extraction output with any other key
// is discarded. The order is stable and shared with the completion prompt.
var Fields = []string{
	"name", "father_name", "mother_name", "gender", "dob", "age", "marital_status", "nationality",
	"religion", "category", "blood_group", "identification_mark", "mobile_number", "alternate_mobile_number",
	"email_address", "present_address", "permanent_address", "pin_code", "state", "district", "city_village",
	"aadhaar_number", "pan_number", "voter_id_number", "passport_number", "driving_license_number",
	"highest_qualification", "board_university", "year_of_passing", "marks_percentage_cgpa", "roll_number",
	"school_college_name", "occupation", "employer_name", "designation_job_title", "work_experience_years",
	"previous_employer", "salary_income_details", "account_holder_name", "bank_name", "account_number",
	"ifsc_code", "branch_name", "upload_photo", "upload_signature", "declaration_checkbox", "place", "date",
	"signature", "disability", "minority_status", "domicile_certificate_number", "income_certificate_number",
	"hostel_required", "transport_required", "preferred_language", "emergency_contact_number",
}

var fieldSet = mapset.NewSet(Fields...)

// IsCanonical reports whether key belongs to the fixed field schema.
func IsCanonical(key string) bool {
	return fieldSet.Contains(key)
}
